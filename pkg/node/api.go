package node

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/utils"
)

type ApiServerImpl struct {
	Node *Node
}

// NewAPIServer exposes the node over HTTP:
//
//	POST /rank     JSON Request, or a text/plain edge list with the
//	               parameters in the query (damping, samples, walkers, threshold)
//	GET  /health
//	GET  /metrics
func NewAPIServer(n *Node) *echo.Echo {
	s := &ApiServerImpl{Node: n}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/health", s.health)
	e.POST("/rank", s.rank)
	e.GET("/metrics", echo.WrapHandler(n.Metrics.Handler()))
	return e
}

func (s *ApiServerImpl) health(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

func (s *ApiServerImpl) rank(c echo.Context) error {
	req, err := bindRequest(c)
	if err != nil {
		s.Node.Metrics.Observe("http", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := s.Node.Compute(req)
	s.Node.Metrics.Observe("http", err)
	if err != nil {
		if IsInvalidRequest(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	utils.ServerLog("Ranked %d pages for %s", len(result.Iterated), c.RealIP())
	return c.JSON(http.StatusOK, result)
}

func bindRequest(c echo.Context) (Request, error) {
	req, err := decodeRequest(c)
	if err != nil && !IsInvalidRequest(err) {
		err = fmt.Errorf("%w: %v", errMalformed, err)
	}
	return req, err
}

func decodeRequest(c echo.Context) (Request, error) {
	var req Request
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMETextPlain) {
		err := c.Bind(&req)
		return req, err
	}
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return req, err
	}
	if req.Links, err = graph.ParseEdgeList(body); err != nil {
		return req, err
	}
	err = echo.QueryParamsBinder(c).
		Float64("damping", &req.DampingFactor).
		Int("samples", &req.Samples).
		Int("walkers", &req.Walkers).
		Float64("threshold", &req.Threshold).
		BindError()
	if err != nil {
		return req, err
	}
	return req, rejectZeros(req, c.QueryParams().Has)
}
