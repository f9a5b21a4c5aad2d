package crazyserver

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
)

func logInitRoute(r *mux.Router, s *Server) {
	r.HandleFunc("/encode/log/block", s.logBlockEncode).Methods("POST")
}

type logBlockRequest struct {
	Command  string                   `json:"command"` // create, append, start, stop, delete or reset
	Block    uint8                    `json:"block"`
	Items    []crazyflie.LogBlockItem `json:"items"`
	PeriodMS int                      `json:"period_ms"`
}

func (s *Server) logBlockEncode(w http.ResponseWriter, r *http.Request) {
	req := logBlockRequest{Command: "create"}
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	request, err := logBlockRequestFor(req)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.respondFrame(w, "log_"+req.Command, crtp.Marshal(request))
}

func logBlockRequestFor(req logBlockRequest) (crtp.Request, error) {
	switch req.Command {
	case "create", "append":
		if err := crazyflie.ValidateLogBlock(req.Items); err != nil {
			return nil, err
		}
		if req.Command == "append" {
			return &crazyflie.LogRequestBlockAppend{ID: req.Block, Items: req.Items}, nil
		}
		return &crazyflie.LogRequestBlockCreate{ID: req.Block, Items: req.Items}, nil
	case "start":
		period, err := crazyflie.LogPeriod(time.Duration(req.PeriodMS) * time.Millisecond)
		if err != nil {
			return nil, err
		}
		return &crazyflie.LogRequestBlockStart{ID: req.Block, Period: period}, nil
	case "stop":
		return &crazyflie.LogRequestBlockStop{ID: req.Block}, nil
	case "delete":
		return &crazyflie.LogRequestBlockDelete{ID: req.Block}, nil
	case "reset":
		return &crazyflie.LogRequestReset{}, nil
	}
	return nil, fmt.Errorf("crazyserver: unknown log command %q", req.Command)
}
