package crazyserver

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
)

func decodeInitRoute(r *mux.Router, s *Server) {
	r.HandleFunc("/decode", s.decodeHandler).Methods("POST")
	r.HandleFunc("/ports", portsIndexHandler).Methods("GET")
}

type decodeRequest struct {
	Hex string `json:"hex"`
}

func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	var req decodeRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	m, err := s.decodeHex(req.Hex)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, m)
}

// decodeHex parses a hex frame, spaces allowed, and counts the outcome.
func (s *Server) decodeHex(text string) (crazyflie.Message, error) {
	raw, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		s.metrics.decodeError(reasonHex)
		return crazyflie.Message{}, fmt.Errorf("crazyserver: frame is not valid hex: %v", err)
	}

	m, err := crazyflie.Decode(raw)
	if err != nil {
		s.metrics.decodeError(errorReason(err))
		s.logger.Debug().Err(err).Hex("packet", raw).Msg("dropping malformed packet")
		return crazyflie.Message{}, err
	}

	s.metrics.decoded(m.Header.Port, m.Kind)
	return m, nil
}

type portResponse struct {
	ID   crtp.Port `json:"id"`
	Name string    `json:"name"`
}

type portsIndexResponse struct {
	Ports []portResponse `json:"ports"`
}

func portsIndexHandler(w http.ResponseWriter, r *http.Request) {
	resp := portsIndexResponse{}
	for _, port := range crtp.Ports() {
		resp.Ports = append(resp.Ports, portResponse{ID: port, Name: port.String()})
	}
	respondJSON(w, http.StatusOK, resp)
}
