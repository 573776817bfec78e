package oslink

import (
	"io"
	"os"
	"time"
)

// Data is everything a Main function takes from the operating system.
type Data struct {
	Args     []string
	Stdout   io.Writer
	Stderr   io.Writer
	ShowDiag bool
	Now      func() time.Time
}

func Get() Data {
	return Data{
		Args:     os.Args,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		ShowDiag: os.Getenv("SHOW_DIAG") != "",
		Now:      time.Now,
	}
}
