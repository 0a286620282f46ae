package cgroup

import (
	"fmt"
	"math"
)

// Unlimited is the sentinel written as the literal "max" to a cgroup v2
// control file in place of a decimal value.
const Unlimited = int64(math.MaxInt64)

// DefaultCPUPeriodMicros is the cpu.max period used when a quota is
// requested without an explicit period.
const DefaultCPUPeriodMicros uint64 = 100000

// Config describes the limits to apply to a single cgroup.
//
// All limit fields are optional (nil means "do not configure this
// controller"); Name defaults to container-<leaderPID> when empty.
type Config struct {
	Name string

	MemoryLimitBytes     *uint64
	MemorySwapLimitBytes *uint64

	CPUWeight       *uint64
	CPUQuotaMicros  *int64
	CPUPeriodMicros *uint64

	PidsLimit *int64
}

// DefaultName returns the default cgroup name for a leader process.
func DefaultName(leaderPID int) string {
	return fmt.Sprintf("container-%d", leaderPID)
}

// WithCPUPercent derives a quota (in microseconds) from a percentage of
// a single CPU period, e.g. WithCPUPercent(100000, 100) == 100000 (one
// full core).
func WithCPUPercent(periodMicros, percent uint64) int64 {
	return int64(periodMicros * percent / 100)
}
