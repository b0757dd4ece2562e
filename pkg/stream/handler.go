// ABOUTME: HTTP handler that streams a producer to each WebSocket client
// ABOUTME: One fresh reader per connection, forwarded until EOF or failure
package stream

import (
	"io"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/Resonate-Protocol/sampleflow/internal/log"
	"github.com/Resonate-Protocol/sampleflow/pkg/audio"
)

// OpenFunc creates the producer for one connection
type OpenFunc func(r *http.Request) (audio.Reader, audio.Format, error)

// Handler upgrades requests to WebSocket and streams a producer to each client
type Handler struct {
	Open     OpenFunc
	Batch    int
	Upgrader websocket.Upgrader
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	logger := log.WithComponent("stream").WithField("remote", req.RemoteAddr)

	src, format, err := h.Open(req)
	if err != nil {
		logger.WithError(err).Error("Failed to open source")
		http.Error(w, "source unavailable", http.StatusInternalServerError)
		return
	}
	if c, ok := src.(io.Closer); ok {
		defer c.Close()
	}

	conn, err := h.Upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.WithError(err).Warn("Upgrade failed")
		return
	}

	sender, err := NewSender(conn, format, h.Batch)
	if err != nil {
		logger.WithError(err).Error("Failed to start stream")
		conn.Close()
		return
	}
	logger = logger.WithFields(logrus.Fields{"stream": sender.StreamID(), "format": format.String()})
	logger.Info("Stream started")

	n, err := audio.CopyAll(sender, src)
	if err != nil {
		logger.WithError(err).WithField("samples", n).Warn("Stream ended early")
	}
	if err := sender.Close(); err != nil {
		logger.WithError(err).Debug("Close failed")
	}
	logger.WithField("samples", n).Info("Stream finished")
}
