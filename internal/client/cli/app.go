package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/swappool/internal/client/client"
	"github.com/dmitrijs2005/swappool/internal/client/config"
	pb "github.com/dmitrijs2005/swappool/internal/proto"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	api    client.Client
	reader *bufio.Reader

	mu          sync.Mutex
	Mode        Mode
	userID      string
	displayName string
	filter      string

	// content the user has seen in this run, for commands that take an id
	current string
	seen    map[string]*pb.Content
}

func NewApp(c *config.Config) (*App, error) {

	apiClient, err := client.NewSwapClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	return newApp(c, apiClient, bufio.NewReader(os.Stdin)), nil
}

func newApp(c *config.Config, api client.Client, r *bufio.Reader) *App {
	return &App{
		config: c,
		api:    api,
		reader: r,
		filter: c.Filter,
		seen:   map[string]*pb.Content{},
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Mode
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()
	a.Root(ctx)
}

func (a *App) hasSession() bool {
	return a.userID != ""
}

// callCtx bounds a single request by the configured timeout.
func (a *App) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) remember(c *pb.Content) {
	if c == nil {
		return
	}
	a.seen[c.ID] = c
	a.current = c.ID
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
