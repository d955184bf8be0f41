// Package server serves generated dungeons over SSH.
package server

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/samdwyer/donjon/internal/presets"
	"github.com/samdwyer/donjon/internal/report"
	"github.com/samdwyer/donjon/internal/telemetry"
	"github.com/samdwyer/donjon/internal/world"
)

// SSHServer answers each session with one dungeon.
type SSHServer struct {
	addr     string
	hostKey  string
	registry *presets.PresetRegistry
	log      logrus.FieldLogger

	// now seeds requests that do not name a seed.
	now func() time.Time
}

// NewSSHServer creates a server bound to addr. An empty hostKey makes the
// library generate an ephemeral key.
func NewSSHServer(addr, hostKey string, reg *presets.PresetRegistry, log logrus.FieldLogger) *SSHServer {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SSHServer{
		addr:     addr,
		hostKey:  hostKey,
		registry: reg,
		log:      log,
		now:      time.Now,
	}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}

	if s.hostKey != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
			return fmt.Errorf("set host key: %w", err)
		}
	}

	s.log.WithField("addr", s.addr).Info("SSH server listening")
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	_, _, pty := sess.Pty()
	log := s.log.WithFields(logrus.Fields{
		"user":   sess.User(),
		"remote": sess.RemoteAddr().String(),
	})

	status := 0
	if err := s.serve(sess.Context(), sess, sess.Command(), pty); err != nil {
		log.WithError(err).Warn("session failed")
		fmt.Fprintf(sess.Stderr(), "error: %v\n", err)
		status = 1
	} else {
		log.Info("dungeon served")
	}
	sess.Exit(status)
}

// serve generates the dungeon a command asks for and writes it to w.
func (s *SSHServer) serve(ctx context.Context, w io.Writer, args []string, color bool) (err error) {
	tracer := telemetry.Tracer("server")
	ctx, span := tracer.Start(ctx, "server.session")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := ParseRequest(args)
	if err != nil {
		return err
	}
	if req.Seed == 0 {
		req.Seed = s.now().UnixNano()
	}

	p, err := req.Params(s.registry)
	if err != nil {
		return err
	}
	span.SetAttributes(
		attribute.String("dungeon.preset", req.Preset),
		attribute.Int64("dungeon.seed", p.Seed),
		attribute.Bool("session.pty", color),
	)

	d, err := world.Generate(ctx, p, world.WithLogger(s.log))
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "seed %d  preset %s  %dx%d\n", p.Seed, req.Preset, d.Rows(), d.Cols()); err != nil {
		return err
	}
	if color {
		return report.WriteMap(w, d, report.MapOptions{})
	}
	return d.WriteText(w, world.TextOptions{})
}
