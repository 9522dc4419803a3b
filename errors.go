package pathplanning

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is wrapped by every error returned for a malformed request, space or robot.
	ErrInvalidConfig = errors.New("invalid planner configuration")

	// ErrNoPathFound is returned when the iteration budget runs out without reaching the goal.
	ErrNoPathFound = errors.New("planner failed to find path")

	// ErrWorkerLost is returned when a planning worker stopped without delivering a result.
	ErrWorkerLost = errors.New("channel to planner worker disconnected")

	// ErrNotFinished is returned by Finalize for a result that has not been produced yet.
	ErrNotFinished = errors.New("planner has not finished")
)

// configError annotates ErrInvalidConfig with what was wrong.
func configError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidConfig, format, args...)
}
