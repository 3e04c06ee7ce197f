package session

import (
	"github.com/abhisek/lingua/internal/imagegen"
)

// timerTickMsg is one countdown second for the word presented as Seq.
type timerTickMsg struct {
	Seq int
}

// imageReadyMsg carries the image for the word presented as Seq.
type imageReadyMsg struct {
	Seq   int
	Image imagegen.Image
	Err   error
}
