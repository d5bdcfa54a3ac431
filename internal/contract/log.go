package contract

import (
	"os"

	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// DefaultLogLevel keeps stderr quiet unless something goes wrong.
const DefaultLogLevel = "warn"

// InitLogging configures the global logger.
func InitLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetOutput(os.Stderr)
	log.SetFormatter(&prefixed.TextFormatter{
		ForceFormatting: true,
		FullTimestamp:   true,
	})
	log.SetLevel(lvl)
	return nil
}

// Logger returns a logger tagged with a component prefix.
func Logger(prefix string) *log.Entry {
	return log.WithFields(log.Fields{"prefix": prefix})
}
