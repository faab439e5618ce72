package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

const (
	// URLPrefix is the path the API serves locally stored files under.
	URLPrefix    = "/uploads"
	ticketFolder = "tickets"
)

var ErrInvalidName = errors.New("invalid attachment name")

// AttachmentStore keeps ticket attachments and hands back the reference
// stored on the ticket.
type AttachmentStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	Delete(ctx context.Context, ref string) error
}

// cleanName rejects names that would escape the tickets folder.
func cleanName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrInvalidName
	}
	return name, nil
}

func localRef(name string) string {
	return path.Join(URLPrefix, ticketFolder, name)
}
