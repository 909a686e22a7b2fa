package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/openorigin/traceability/api-gateway/config"
	"github.com/openorigin/traceability/api-gateway/loadbalancer"
	"github.com/openorigin/traceability/pkg/logger"
)

// ReverseProxy forwards requests to the traceability replica pool. A
// replica that cannot be reached is marked down and the next one tried;
// the request fails only once the whole pool is exhausted.
type ReverseProxy struct {
	upstream config.UpstreamConfig
	pool     *loadbalancer.Pool
	client   *http.Client
}

// NewReverseProxy creates a reverse proxy over the upstream pool.
func NewReverseProxy(upstream config.UpstreamConfig, pool *loadbalancer.Pool) *ReverseProxy {
	return &ReverseProxy{
		upstream: upstream,
		pool:     pool,
		client: &http.Client{
			Timeout: upstream.Timeout,
		},
	}
}

// Forward proxies the request to the next available replica.
func (p *ReverseProxy) Forward(c *fiber.Ctx) error {
	attempts := len(p.pool.Replicas())

	for attempt := 1; attempt <= attempts; attempt++ {
		replica := p.pool.Next()
		if replica == "" {
			break
		}

		logger.Logger.Debug().
			Str("replica", replica).
			Str("path", c.Path()).
			Int("attempt", attempt).
			Msg("Forwarding to replica")

		resp, err := p.do(c, replica)
		if err != nil {
			p.pool.MarkDown(replica)
			logger.Logger.Warn().
				Err(err).
				Str("replica", replica).
				Str("path", c.Path()).
				Msg("Replica unreachable")
			continue
		}

		return p.respond(c, resp)
	}

	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error":    "No reachable replicas",
		"upstream": p.upstream.Name,
	})
}

func (p *ReverseProxy) do(c *fiber.Ctx, replica string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(
		c.UserContext(),
		c.Method(),
		p.targetURL(c, replica),
		bytes.NewReader(c.Body()),
	)
	if err != nil {
		return nil, err
	}

	p.copyHeaders(c, req)

	return p.client.Do(req)
}

// targetURL keeps the original path and query, swapping only the host.
func (p *ReverseProxy) targetURL(c *fiber.Ctx, replica string) string {
	path := string(c.Request().URI().Path())

	queryString := string(c.Request().URI().QueryString())
	if queryString != "" {
		queryString = "?" + queryString
	}

	return replica + path + queryString
}

// copyHeaders copies request headers onto the upstream request
func (p *ReverseProxy) copyHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		if strings.ToLower(string(key)) == "host" {
			return
		}
		req.Header.Set(string(key), string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
}

// respond copies the upstream response back to the client
func (p *ReverseProxy) respond(c *fiber.Ctx, resp *http.Response) error {
	defer resp.Body.Close()

	for key, values := range resp.Header {
		if strings.ToLower(key) == "content-length" {
			continue
		}
		for _, value := range values {
			c.Set(key, value)
		}
	}

	c.Status(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read upstream response",
		})
	}

	return c.Send(body)
}
