package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ironsheep/textart-server/internal/domain"
	"github.com/ironsheep/textart-server/internal/imaging"
)

// formOverhead is the room left for the non-file multipart fields on top
// of the upload limit.
const formOverhead = 1 << 20

// maxJSONBytes caps the text-to-ascii request body.
const maxJSONBytes = 1 << 20

// handleImageToASCII converts an uploaded image into character art.
//
// The upload is read from the multipart field "image". Conversion
// parameters come from the remaining form fields; every one of them is
// optional. The response is the grid as plain text, or as a PNG when
// format=png.
func (s *Server) handleImageToASCII(w http.ResponseWriter, r *http.Request) {
	const op = "server.image_to_ascii"

	if s.opts.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+formOverhead)
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.writeError(w, r, domain.Errorf(op, domain.KindInvalidInput, "upload exceeds %d bytes", s.opts.MaxUploadBytes))
			return
		}
		s.writeError(w, r, domain.Errorf(op, domain.KindMissingInput, "missing image"))
		return
	}
	defer file.Close()

	req, err := parseConversionForm(r)
	if err != nil {
		s.writeError(w, r, domain.NewError(op, domain.KindInvalidInput, err))
		return
	}
	req.Filename = header.Filename

	opts, err := s.converter.Options(req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	upload, err := s.stager.Stage(file, header.Filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer func() {
		if err := upload.Release(); err != nil {
			s.logger.Warn("staging.release", "request_id", RequestID(r.Context()), "error", err)
		}
	}()

	rc, err := upload.Open()
	if err != nil {
		s.writeError(w, r, domain.NewError(op, domain.KindInternal, err))
		return
	}
	img, info, err := imaging.DecodeLimited(rc, s.opts.MaxPixels)
	rc.Close()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	grid, err := s.converter.Convert(r.Context(), img, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug("image converted",
		"request_id", RequestID(r.Context()),
		"file", header.Filename,
		"format", info.Format,
		"source", fmt.Sprintf("%dx%d", info.Width, info.Height),
		"grid", fmt.Sprintf("%dx%d", grid.Width, grid.Height),
	)

	if req.Format == domain.FormatPNG {
		data, err := imaging.RenderPNG(grid.Rows, s.opts.Render)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `inline; filename="ascii-art.png"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeText(w, http.StatusOK, grid.String())
}

// parseConversionForm reads the optional conversion fields. Only syntax is
// checked here; ranges and names are validated by the converter.
func parseConversionForm(r *http.Request) (domain.ConversionRequest, error) {
	var req domain.ConversionRequest
	var err error

	if req.Width, err = formInt(r, "width"); err != nil {
		return req, err
	}
	if req.Threshold, err = formInt(r, "threshold"); err != nil {
		return req, err
	}
	if req.Brightness, err = formFloat(r, "brightness"); err != nil {
		return req, err
	}
	if req.Contrast, err = formFloat(r, "contrast"); err != nil {
		return req, err
	}
	for name, dst := range map[string]*bool{
		"invert":  &req.Invert,
		"sharpen": &req.Sharpen,
		"edges":   &req.Edges,
		"circle":  &req.Circle,
	} {
		if *dst, err = formBool(r, name); err != nil {
			return req, err
		}
	}

	req.Palette = strings.TrimSpace(r.FormValue("palette"))
	req.Luminance = strings.TrimSpace(r.FormValue("luminance"))
	req.Filter = strings.ToLower(strings.TrimSpace(r.FormValue("filter")))
	req.Format = strings.ToLower(strings.TrimSpace(r.FormValue("format")))
	return req, nil
}

// formInt returns nil for an absent or blank field so that an explicit
// zero stays distinguishable from "use the default".
func formInt(r *http.Request, name string) (*int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer, got %q", name, v)
	}
	return &n, nil
}

func formFloat(r *http.Request, name string) (float64, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, v)
	}
	return f, nil
}

// formBool accepts the strconv.ParseBool spellings plus "on", which is what
// an HTML checkbox submits.
func formBool(r *http.Request, name string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(r.FormValue(name)))
	switch v {
	case "":
		return false, nil
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", name, v)
	}
	return b, nil
}

type textRequest struct {
	Text string `json:"text"`
	Font string `json:"font"`
}

// handleTextToASCII renders {"text", "font"} as banner art.
func (s *Server) handleTextToASCII(w http.ResponseWriter, r *http.Request) {
	const op = "server.text_to_ascii"

	var req textRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, domain.Errorf(op, domain.KindInvalidInput, "invalid JSON body: %v", err))
		return
	}
	if req.Font == "" {
		req.Font = s.opts.DefaultFont
	}

	out, err := s.glyphs.Render(req.Text, req.Font)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, http.StatusOK, out)
}

func (s *Server) handleFonts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.glyphs.Fonts())
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.converter.Palettes().All())
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Endpoints(s.converter.Palettes().Names(), s.glyphs.Fonts()))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindMissingInput, domain.KindInvalidInput, domain.KindInvalidFont:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client. Client errors carry the bare
// message; server errors are prefixed with "Error: ".
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)
	msg := domain.Message(err)

	attrs := []any{"request_id", RequestID(r.Context()), "kind", string(kind), "error", err}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", attrs...)
		msg = "Error: " + msg
	} else {
		s.logger.Warn("request rejected", attrs...)
	}
	writeText(w, status, msg)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
