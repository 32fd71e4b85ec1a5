package buffer

import (
	"bufio"
	"os"
)

// Storage is the file system as the document sees it.
type Storage interface {
	ReadAll(path string) ([]byte, error)
	// WriteLines creates or truncates path and writes every line followed by
	// a newline.
	WriteLines(path string, lines []string) error
}

// FileStorage reads and writes through the os package.
type FileStorage struct{}

func (FileStorage) ReadAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (FileStorage) WriteLines(path string, lines []string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err = w.WriteString(line); err != nil {
			return err
		}
		if err = w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}
