package http_server

import (
	"context"
	"log/slog"
	"net"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

type Config struct {
	MetricsAuthToken string `yaml:"metrics_auth_token"`
}

// HttpServer exposes the operational endpoints: prometheus metrics
// (bearer-token protected) and a liveness probe.
type HttpServer struct {
	address          string
	metricsAuthToken string
	l                *slog.Logger
}

func New(address string, cfg *Config, l *slog.Logger) *HttpServer {
	token := ""
	if cfg != nil {
		token = cfg.MetricsAuthToken
	}
	return &HttpServer{
		address:          address,
		metricsAuthToken: token,
		l:                l.With("service", "HttpServer"),
	}
}

func (s *HttpServer) Run(ctx context.Context) error {
	r := router.New()
	if s.metricsAuthToken != "" {
		r.GET(
			"/metrics",
			bearerTokenAuth(
				s.metricsAuthToken,
				fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler()),
			),
		)
	}
	r.GET("/healthz", healthHandler)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	go func() {
		<-ctx.Done()
		s.l.Info("stopping http server")
		_ = listener.Close()
	}()

	s.l.Info("starting http server", "address", s.address)
	return fasthttp.Serve(listener, r.Handler)
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	ctx.Response.SetStatusCode(fasthttp.StatusOK)
	ctx.Response.Header.SetContentType("text/plain")
	ctx.Response.SetBody([]byte("ok"))
}
