package logger

import (
	"io"
	"log"
	"os"
)

// New returns a logger writing to the file at path, or to stdout when path is empty
func New(path string) *log.Logger {
	if len(path) == 0 {
		return log.New(os.Stdout, "MMU ", log.Ldate|log.Ltime|log.Lshortfile)
	} else {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0666)
		if err != nil {
			log.Fatal(err)
		}
		l := log.New(f, "MMU ", log.Ldate|log.Ltime|log.Lshortfile)
		l.Printf("Initializing %s", path)
		return l
	}
}

// Discard returns a logger that drops everything
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
