package bootstrap

import (
	"github.com/mmgblabel-png/bigharvestfarming/internal/logger"
	"github.com/mmgblabel-png/bigharvestfarming/internal/statesync"
)

// RegisterOutcomeLogging logs every outcome the client publishes
func RegisterOutcomeLogging(client *statesync.Client) {
	profile := client.Config().Profile

	client.OnFetchOk(func(json string) {
		logger.Info(LogMsgStateFetched, logger.AttrKeyProfile, profile, "bytes", len(json))
	})
	client.OnFetchError(func(message string) {
		logger.Warn(LogMsgFetchFailed, logger.AttrKeyProfile, profile, "message", message)
	})
	client.OnSaveOk(func() {
		logger.Info(LogMsgStateSaved, logger.AttrKeyProfile, profile)
	})
	client.OnSaveError(func(message string) {
		logger.Warn(LogMsgSaveFailed, logger.AttrKeyProfile, profile, "message", message)
	})
	client.OnResetOk(func(json string) {
		logger.Info(LogMsgStateReset, logger.AttrKeyProfile, profile, "bytes", len(json))
	})
	client.OnResetError(func(message string) {
		logger.Warn(LogMsgResetFailed, logger.AttrKeyProfile, profile, "message", message)
	})
}
