package workerpool

import "github.com/pkg/errors"

// ErrPoolClosed is returned by Submit once Close has begun.
var ErrPoolClosed = errors.New("workerpool: pool closed")
