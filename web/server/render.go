package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// Time allowed to write a message to the client
	writeWait = 10 * time.Second
	// Interval between keep-alive pings
	pingPeriod = 30 * time.Second
	// StopCommand is the text message a client sends to cancel a render
	StopCommand = "stop"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event types sent as JSON text frames. Rows are sent as binary frames.
const (
	EventStart    = "start"
	EventConsole  = "console"
	EventComplete = "complete"
	EventError    = "error"
)

// StreamEvent is a JSON text frame on the render socket
type StreamEvent struct {
	Type    string          `json:"type"`
	Render  *RenderInfo     `json:"render,omitempty"`
	Console *ConsoleMessage `json:"console,omitempty"`
	Stats   *Stats          `json:"stats,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// RenderInfo describes the render that is starting
type RenderInfo struct {
	Scene     string  `json:"scene"`
	Name      string  `json:"name"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Depth     int     `json:"depth"`
	Threshold float64 `json:"threshold"`
	Samples   int     `json:"samples"`
}

// Stats represents render statistics
type Stats struct {
	ElapsedMs        int64            `json:"elapsedMs"`
	Rows             int              `json:"rows"`
	Pixels           int              `json:"pixels"`
	Samples          int              `json:"samples"`
	Rays             map[string]int64 `json:"rays"`
	TotalRays        int64            `json:"totalRays"`
	AverageLuminance float64          `json:"averageLuminance"`
	Cancelled        bool             `json:"cancelled"`
}

// outbound is a message queued for the socket writer
type outbound struct {
	messageType int
	data        []byte
	event       *StreamEvent
}

// handleRender upgrades to a websocket and streams the render row by row.
// Closing the socket or sending StopCommand cancels the render.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.loadRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	consoleChan, webLogger := s.setupConsoleLogging()
	outChan := make(chan outbound, 64)
	writerDone := make(chan struct{})

	go s.readControl(conn, cancel)
	go s.writeMessages(conn, outChan, consoleChan, cancel, writerDone)

	s.streamRender(ctx, outChan, req, sceneObj, webLogger)

	close(outChan)
	<-writerDone
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// streamRender runs the render and queues start, row and final events
func (s *Server) streamRender(ctx context.Context, outChan chan<- outbound, req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) {
	config := req.Config(sceneObj)
	sceneObj.Freeze()

	// The writer drains outChan until it is closed, so sends never block for long
	send := func(msg outbound) { outChan <- msg }

	send(outbound{event: &StreamEvent{Type: EventStart, Render: &RenderInfo{
		Scene:     req.Scene,
		Name:      sceneObj.Name,
		Width:     config.Width,
		Height:    config.Height,
		Depth:     config.Integrator.MaxDepth,
		Threshold: config.Integrator.Threshold,
		Samples:   config.Samples,
	}}})

	frame, stats, err := renderer.NewRenderer(sceneObj, config, logger).Render(ctx, func(rc renderer.RowCompletion) {
		send(outbound{messageType: websocket.BinaryMessage, data: EncodeRowPacket(RowPacket{
			Row:       rc.Row,
			Width:     rc.Frame.Width,
			Completed: rc.Completed,
			Total:     rc.Total,
			Pixels:    rc.Pixels,
		})})
	})

	cancelled := errors.Is(err, context.Canceled)
	if err != nil && !cancelled {
		send(outbound{event: &StreamEvent{Type: EventError, Error: fmt.Sprintf("Rendering failed: %v", err)}})
		return
	}

	summary := newStats(stats, frame)
	summary.Cancelled = cancelled
	send(outbound{event: &StreamEvent{Type: EventComplete, Stats: summary}})
}

// newStats converts renderer statistics to the wire format
func newStats(stats renderer.RenderStats, frame *renderer.FrameBuffer) *Stats {
	rays := make(map[string]int64, len(stats.Rays))
	for kind, n := range stats.Rays {
		rays[core.RayKind(kind).String()] = n
	}
	summary := &Stats{
		ElapsedMs: stats.Elapsed.Milliseconds(),
		Rows:      stats.Rows,
		Pixels:    stats.Pixels,
		Samples:   stats.Samples,
		Rays:      rays,
		TotalRays: stats.TotalRays(),
	}
	if frame != nil {
		summary.AverageLuminance = renderer.CalculateAverageLuminance(frame.ToImage())
	}
	return summary
}

// readControl reads client messages until the socket closes, cancelling the
// render on StopCommand or disconnect
func (s *Server) readControl(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		messageType, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType == websocket.TextMessage && string(msg) == StopCommand {
			return
		}
	}
}

// writeMessages is the only goroutine writing to the socket. It forwards queued
// messages and console lines until outChan is closed. After a write error it
// keeps draining so producers never block.
func (s *Server) writeMessages(conn *websocket.Conn, outChan <-chan outbound, consoleChan <-chan ConsoleMessage, cancel context.CancelFunc, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	failed := false
	write := func(msg outbound) {
		if failed {
			return
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		var err error
		if msg.event != nil {
			err = conn.WriteJSON(msg.event)
		} else {
			err = conn.WriteMessage(msg.messageType, msg.data)
		}
		if err != nil {
			// Client disconnected during write
			failed = true
			cancel()
		}
	}

	for {
		select {
		case msg, ok := <-outChan:
			if !ok {
				s.flushConsole(consoleChan, write)
				if !failed {
					conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "render finished"))
				}
				return
			}
			// Console lines logged before this message go first
			s.flushConsole(consoleChan, write)
			write(msg)

		case consoleMsg := <-consoleChan:
			write(outbound{event: &StreamEvent{Type: EventConsole, Console: &consoleMsg}})

		case <-ticker.C:
			if !failed {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					failed = true
					cancel()
				}
			}
		}
	}
}

// flushConsole writes every console line already queued
func (s *Server) flushConsole(consoleChan <-chan ConsoleMessage, write func(outbound)) {
	for {
		select {
		case consoleMsg := <-consoleChan:
			write(outbound{event: &StreamEvent{Type: EventConsole, Console: &consoleMsg}})
		default:
			return
		}
	}
}
