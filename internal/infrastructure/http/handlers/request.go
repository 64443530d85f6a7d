package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/middleware"
	"github.com/yuzvak/herbal-storefront/internal/infrastructure/http/response"
	"github.com/yuzvak/herbal-storefront/internal/presentation/view"
)

const maxBodyBytes = 64 << 10

type customerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// decodeBody accepts an empty body as the zero value.
func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func session(r *http.Request) view.Session {
	return view.Session{
		Storefront: chi.URLParam(r, "variant"),
		ID:         middleware.SessionID(r.Context()),
	}
}

func productIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "id")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeFailure maps err and carries the toast the controller showed, if any.
func writeFailure(w http.ResponseWriter, err error, rec *view.Recorder) {
	statusCode, resp := response.MapDomainError(err)
	if rec != nil {
		if toasts := rec.Frame().Toasts; len(toasts) > 0 {
			resp.Toast = toasts[len(toasts)-1].Message
		}
	}
	response.WriteJSON(w, statusCode, resp)
}
