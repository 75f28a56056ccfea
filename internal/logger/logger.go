package logger

import (
	"io"
	"log"
	"os"
)

// EnvDebugLog names the variable that points the diagnostic log at a file.
const EnvDebugLog = "FAKELOG_DEBUG_LOG"

// Log never writes to stdout; it is discarded unless Init gets a path.
var Log = log.New(io.Discard, "", log.LstdFlags)

var file *os.File

func Init(logFilePath string) error {
	if logFilePath == "" {
		return nil
	}

	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}

	Close()
	file = f
	Log = log.New(f, "", log.LstdFlags)
	Log.Println("Logger initialized.")
	return nil
}

func Close() {
	if file != nil {
		_ = file.Close()
		file = nil
	}
	Log = log.New(io.Discard, "", log.LstdFlags)
}
