package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KarchinLab/open-cravat-extras/internal/resolve"
	"github.com/KarchinLab/open-cravat-extras/internal/variant"
)

const unrecognizedMessage = "Could not determine input type."

// respond writes the {"code", "body", ...fields} envelope.
func respond(c *gin.Context, code int, message string, fields gin.H) {
	body := gin.H{"code": code, "body": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(code, body)
}

type resolveRequest struct {
	Input    *string `json:"input"`
	Assembly string  `json:"assembly"`
}

type resolveAllRequest struct {
	Inputs   []string `json:"inputs"`
	Assembly string   `json:"assembly"`
}

func (s *Server) helloHandler(c *gin.Context) {
	respond(c, http.StatusOK, "Variant input API is running.", nil)
}

func (s *Server) examplesHandler(c *gin.Context) {
	examples := variant.Examples()
	out := make([]gin.H, 0, len(examples))
	for _, ex := range examples {
		res, err := s.resolve(ex.Input, s.assembly)
		if err != nil {
			s.logger.Error("example failed to resolve", zap.String("input", ex.Input), zap.Error(err))
			continue
		}
		out = append(out, gin.H{"category": ex.Category, "input": ex.Input, "url": res.URL})
	}
	respond(c, http.StatusOK, fmt.Sprintf("%d examples", len(out)), gin.H{"examples": out})
}

func (s *Server) resolveHandler(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Request body must be a JSON object", nil)
		return
	}
	if req.Input == nil {
		respond(c, http.StatusBadRequest, "input parameter missing", nil)
		return
	}

	assembly, err := s.requestAssembly(req.Assembly)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), gin.H{"input": *req.Input})
		return
	}

	res, err := s.resolve(*req.Input, assembly)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), gin.H{"input": *req.Input})
		return
	}
	if !res.Recognized() {
		respond(c, http.StatusBadRequest, unrecognizedMessage, gin.H{"input": res.Input})
		return
	}

	respond(c, http.StatusOK, fmt.Sprintf("Input resolved as %s", res.Category), resolutionFields(res))
}

func (s *Server) resolveAllHandler(c *gin.Context) {
	var req resolveAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "inputs parameter must be a list of strings", nil)
		return
	}
	if req.Inputs == nil {
		respond(c, http.StatusBadRequest, "inputs parameter missing", nil)
		return
	}

	assembly, err := s.requestAssembly(req.Assembly)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), gin.H{"inputs": req.Inputs})
		return
	}

	resolutions := make([]gin.H, 0, len(req.Inputs))
	var errs []string
	for _, in := range req.Inputs {
		res, err := s.resolve(in, assembly)
		switch {
		case err != nil:
			errs = append(errs, err.Error())
		case !res.Recognized():
			errs = append(errs, fmt.Sprintf("%s input: %q", unrecognizedMessage, in))
		default:
			resolutions = append(resolutions, resolutionFields(res))
		}
	}

	fields := gin.H{"resolutions": resolutions}
	if len(errs) > 0 {
		fields["errors"] = errs
	}
	respond(c, http.StatusOK, fmt.Sprintf("%d of %d inputs resolved", len(resolutions), len(req.Inputs)), fields)
}

// reportHandler redirects straight to the variant report page.
func (s *Server) reportHandler(c *gin.Context) {
	q, ok := c.GetQuery("q")
	if !ok {
		respond(c, http.StatusBadRequest, "q parameter missing", nil)
		return
	}

	assembly, err := s.requestAssembly(c.Query("assembly"))
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), gin.H{"input": q})
		return
	}

	res, err := s.resolve(q, assembly)
	if err != nil {
		respond(c, http.StatusBadRequest, err.Error(), gin.H{"input": q})
		return
	}
	if !res.Recognized() {
		respond(c, http.StatusBadRequest, unrecognizedMessage, gin.H{"input": q})
		return
	}

	c.Redirect(http.StatusFound, res.URL)
}

// requestAssembly falls back to the configured default when none is sent.
func (s *Server) requestAssembly(raw string) (variant.Assembly, error) {
	if raw == "" {
		return s.assembly, nil
	}
	return variant.ParseAssembly(raw)
}

// resolve consults the cache before the resolver. The returned value is a
// copy carrying this request's raw input.
func (s *Server) resolve(raw string, assembly variant.Assembly) (*resolve.Resolution, error) {
	norm := variant.Normalize(raw)
	if cached, ok := s.cache.Get(norm, assembly); ok {
		res := *cached
		res.Input = raw
		return &res, nil
	}

	res, err := s.resolver.Resolve(raw, assembly)
	if err != nil {
		return nil, err
	}
	s.cache.Set(norm, assembly, res)

	out := *res
	return &out, nil
}

func resolutionFields(res *resolve.Resolution) gin.H {
	fields := gin.H{
		"input":      res.Input,
		"normalized": res.Normalized,
		"category":   res.Category,
		"url":        res.URL,
	}
	if res.Coordinates != nil {
		fields["coordinates"] = res.Coordinates
		fields["assembly"] = res.Assembly
	}
	return fields
}
