package mermaid

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "os"
  "os/exec"
  "strings"
  "time"

  "github.com/Teahana/user-enrollment/internal/logger"
)

// PlaceholderSVG is returned whenever the renderer is unreachable or
// errors, so the diagram page always has something to display.
const PlaceholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="400" height="120">` +
  `<rect width="100%" height="100%" fill="#f8f9fa"/>` +
  `<text x="50%" y="50%" dominant-baseline="middle" text-anchor="middle" fill="#6c757d">` +
  `Diagram service unavailable</text></svg>`

// Client talks to the node-based mermaid rendering sidecar. The sidecar
// exposes POST /generate-svg taking {"code": "graph TD\n..."} and
// GET /ping for liveness.
type Client interface {
  Start(ctx context.Context) error
  Ping(ctx context.Context) error
  // GenerateSVG renders mermaid markup to SVG. It never fails the
  // caller's request: on any error it logs and returns PlaceholderSVG.
  GenerateSVG(ctx context.Context, code string) string
  Stop() error
}

type client struct {
  log        *logger.Logger
  baseURL    string
  scriptPath string
  httpClient *http.Client
  cmd        *exec.Cmd
}

func NewClient(log *logger.Logger) Client {
  baseURL := strings.TrimSpace(os.Getenv("MERMAID_SERVICE_URL"))
  if baseURL == "" {
    baseURL = "http://localhost:3001"
  }
  return &client{
    log:        log.With("service", "MermaidClient"),
    baseURL:    strings.TrimRight(baseURL, "/"),
    scriptPath: strings.TrimSpace(os.Getenv("MERMAID_SERVICE_SCRIPT")),
    httpClient: &http.Client{Timeout: 15 * time.Second},
  }
}

// Start launches the sidecar process when MERMAID_SERVICE_SCRIPT is set,
// then waits for it to answer /ping. When the script path is empty the
// sidecar is assumed to be managed externally and Start only pings.
func (c *client) Start(ctx context.Context) error {
  if c.scriptPath != "" {
    cmd := exec.Command("node", c.scriptPath)
    cmd.Stdout = os.Stdout
    cmd.Stderr = os.Stderr
    if err := cmd.Start(); err != nil {
      return fmt.Errorf("start mermaid sidecar: %w", err)
    }
    c.cmd = cmd
    c.log.Info("Started mermaid sidecar", "pid", cmd.Process.Pid, "script", c.scriptPath)
  }

  deadline := time.Now().Add(10 * time.Second)
  for {
    if err := c.Ping(ctx); err == nil {
      return nil
    }
    if time.Now().After(deadline) {
      return fmt.Errorf("mermaid sidecar did not become ready at %s", c.baseURL)
    }
    select {
    case <-ctx.Done():
      return ctx.Err()
    case <-time.After(500 * time.Millisecond):
    }
  }
}

func (c *client) Ping(ctx context.Context) error {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
  if err != nil {
    return err
  }
  resp, err := c.httpClient.Do(req)
  if err != nil {
    return err
  }
  defer resp.Body.Close()
  if resp.StatusCode != http.StatusOK {
    return fmt.Errorf("mermaid ping status %d", resp.StatusCode)
  }
  return nil
}

func (c *client) GenerateSVG(ctx context.Context, code string) string {
  payload, err := json.Marshal(map[string]string{"code": code})
  if err != nil {
    c.log.Warn("Failed to encode mermaid payload", "error", err)
    return PlaceholderSVG
  }
  req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate-svg", bytes.NewReader(payload))
  if err != nil {
    c.log.Warn("Failed to build mermaid request", "error", err)
    return PlaceholderSVG
  }
  req.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(req)
  if err != nil {
    c.log.Warn("Mermaid sidecar unreachable", "error", err)
    return PlaceholderSVG
  }
  defer resp.Body.Close()

  body, err := io.ReadAll(resp.Body)
  if err != nil {
    c.log.Warn("Failed to read mermaid response", "error", err)
    return PlaceholderSVG
  }
  if resp.StatusCode != http.StatusOK {
    c.log.Warn("Mermaid sidecar returned error", "status", resp.StatusCode, "body", string(body))
    return PlaceholderSVG
  }
  return string(body)
}

func (c *client) Stop() error {
  if c.cmd == nil || c.cmd.Process == nil {
    return nil
  }
  if err := c.cmd.Process.Kill(); err != nil {
    return err
  }
  _, _ = c.cmd.Process.Wait()
  c.cmd = nil
  return nil
}
