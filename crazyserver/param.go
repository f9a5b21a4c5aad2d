package crazyserver

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mikehamer/crazycodec/crazyflie"
	"github.com/mikehamer/crazycodec/crtp"
)

func paramInitRoute(r *mux.Router, s *Server) {
	r.HandleFunc("/encode/param/toc", s.paramTocEncode).Methods("POST")
	r.HandleFunc("/encode/param/read", s.paramReadEncode).Methods("POST")
	r.HandleFunc("/encode/param/write", s.paramWriteEncode).Methods("POST")
}

type paramTocRequest struct {
	Item *uint16 `json:"item"` // info request when absent
}

func (s *Server) paramTocEncode(w http.ResponseWriter, r *http.Request) {
	var req paramTocRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	if req.Item == nil {
		s.respondFrame(w, "param_toc_info", crtp.Marshal(&crazyflie.ParamRequestTocInfo{}))
		return
	}
	s.respondFrame(w, "param_toc_item", crtp.Marshal(&crazyflie.ParamRequestTocItem{ID: *req.Item}))
}

type paramReadRequest struct {
	ID uint16 `json:"id"`
}

func (s *Server) paramReadEncode(w http.ResponseWriter, r *http.Request) {
	var req paramReadRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	s.respondFrame(w, "param_read", crtp.Marshal(&crazyflie.ParamRequestRead{ID: req.ID}))
}

type paramWriteRequest struct {
	ID    uint16  `json:"id"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

func (s *Server) paramWriteEncode(w http.ResponseWriter, r *http.Request) {
	var req paramWriteRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "Bad request!")
		return
	}

	t, ok := crazyflie.ParamTypeByName(req.Type)
	if !ok {
		respondError(w, r, http.StatusUnprocessableEntity, fmt.Sprintf("Unknown parameter type %q", req.Type))
		return
	}
	data, err := crazyflie.ParamValueBytes(t, req.Value)
	if err != nil {
		respondError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.respondFrame(w, "param_write", crtp.Marshal(&crazyflie.ParamRequestWrite{ID: req.ID, Data: data}))
}
