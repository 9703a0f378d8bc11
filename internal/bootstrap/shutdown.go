package bootstrap

import (
	"context"

	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/server"
	"github.com/mmgblabel-png/bigharvestfarming/internal/statesync"
)

// ShutdownComponents holds the components that need graceful shutdown.
// Either may be nil.
type ShutdownComponents struct {
	Server *server.Server
	Client *statesync.Client
}

// GracefulShutdown stops the HTTP server first, then disposes the sync
// client and waits for its in-flight requests until ctx expires.
// Errors are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	if components.Server != nil {
		logger.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			logger.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Client != nil {
		components.Client.Close()
		logger.Info(LogMsgDrainingSyncClient)
		if !waitClient(ctx, components.Client) {
			logger.Warn(LogMsgSyncDrainTimedOut)
		}
	}

	logger.Info(LogMsgServerStopped)
}

// waitClient reports whether the client drained before ctx was done
func waitClient(ctx context.Context, client *statesync.Client) bool {
	done := make(chan struct{})
	go func() {
		client.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}
