// Package logger provides the leveled, correlated, rotating audit logger the
// request-security layer depends on.
//
// It builds on log/slog: New returns a *slog.Logger whose JSON handler
// writes to a file named by the current date and rotates it through numbered
// backups once it crosses a size threshold. The full syslog severity scale
// (emergency through debug) is expressed as slog levels, so the configured
// threshold suppresses records before any formatting or I/O occurs.
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log, closeLog := logger.New(cfg)
//	defer closeLog()
//
//	log.LogAttrs(ctx, logger.LevelNotice, "article published",
//		logger.UserID(userID))
//
// Two specialized entry shapes exist alongside plain records: Security for
// audit events (always at warning, tagged with client IP, user agent and
// session id) and APIAccess for per-request access entries.
//
// Logging is best-effort by contract: the rotating writer discards every
// filesystem error, so a full disk or unwritable directory degrades to
// silence instead of failing requests.
package logger
