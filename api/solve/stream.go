package solveapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/sma-maze/domain"
	"github.com/beka-birhanu/sma-maze/search"
	"github.com/beka-birhanu/sma-maze/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait = time.Second
	readWait  = 10 * time.Second

	messageStep     = "step"
	messageSolution = "solution"
	messageError    = "error"
)

var upgrader = websocket.Upgrader{}

// StepMessage is one expansion as sent over the stream.
type StepMessage struct {
	Current dmn.Point `json:"current"`
	G       int       `json:"g"`
	H       int       `json:"h"`
	F       int       `json:"f"`
	Open    int       `json:"open"`
	Closed  int       `json:"closed"`
	Bound   float64   `json:"bound"`
}

// StreamMessage is a frame on the solve stream: steps, then one solution or error.
type StreamMessage struct {
	Type     string            `json:"type"`
	Step     *StepMessage      `json:"step,omitempty"`
	Solution *SolutionResponse `json:"solution,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// stream reads one SolveRequest from the socket and pushes every expansion
// of its search before the final solution.
func (sc *SolveController) stream(ctx *gin.Context) {
	ws, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		return
	}
	defer closeWebsocket(ws)

	var request SolveRequest
	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	if err := ws.ReadJSON(&request); err != nil {
		_ = writeFrame(ws, &StreamMessage{Type: messageError, Error: "expected a solve request"})
		return
	}

	// a closed or failing client cancels the run so its result is not stored
	runCtx, cancel := context.WithCancel(ctx.Request.Context())
	defer cancel()
	_ = ws.SetReadDeadline(time.Time{})
	go watchClose(ws, cancel)

	var writeErr error
	observe := func(s search.Step) {
		if writeErr != nil {
			return
		}
		writeErr = writeFrame(ws, &StreamMessage{
			Type: messageStep,
			Step: &StepMessage{
				Current: dmn.Point{Row: s.Current.Row, Col: s.Current.Col},
				G:       s.G,
				H:       s.H,
				F:       s.F,
				Open:    s.Open,
				Closed:  s.Closed,
				Bound:   s.Bound,
			},
		})
		if writeErr != nil {
			cancel()
		}
	}

	solution, err := sc.solver.Stream(runCtx, dmn.SolveRequest{
		Layout: request.Layout,
		Bound:  request.Bound,
		Policy: request.Policy,
		Factor: request.Factor,
	}, observe)
	if writeErr != nil || runCtx.Err() != nil {
		return
	}
	if err != nil {
		msg := "internal error"
		if errors.Is(err, service.ErrInvalidRequest) {
			msg = err.Error()
		}
		_ = writeFrame(ws, &StreamMessage{Type: messageError, Error: msg})
		return
	}

	response, err := newSolutionResponse(solution)
	if err != nil {
		_ = writeFrame(ws, &StreamMessage{Type: messageError, Error: "stored layout is unreadable"})
		return
	}
	_ = writeFrame(ws, &StreamMessage{Type: messageSolution, Solution: response})
}

// watchClose cancels once the client closes the connection or it breaks.
func watchClose(ws *websocket.Conn, cancel context.CancelFunc) {
	for {
		if _, _, err := ws.NextReader(); err != nil {
			cancel()
			return
		}
	}
}

func writeFrame(ws *websocket.Conn, msg *StreamMessage) error {
	if err := ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return ws.WriteJSON(msg)
}

func closeWebsocket(ws *websocket.Conn) {
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	ws.Close()
}

// rejectPlainHTTP answers non-websocket requests to the stream route.
func rejectPlainHTTP(ctx *gin.Context) {
	if !websocket.IsWebSocketUpgrade(ctx.Request) {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "websocket upgrade required"})
		return
	}
	ctx.Next()
}
