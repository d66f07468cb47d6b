package pgdb

import (
	"testing"
	"time"

	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestClaimEvents_ReclaimsStaleProcessing(t *testing.T) {
	args := claimEventsArgs(50, ProcessingTimeout)

	assert.Equal(t, []any{string(usecase.Processing), string(usecase.Pending), 50, float64(300)}, args)
	assert.Contains(t, claimEventsQuery, "status = $2")
	assert.Contains(t, claimEventsQuery, "status = $1 AND processing_started_at < NOW() - make_interval(secs => $4::double precision)")
	assert.Contains(t, claimEventsQuery, "FOR UPDATE SKIP LOCKED")
}

func TestClaimEvents_TimeoutInSeconds(t *testing.T) {
	args := claimEventsArgs(1, 1500*time.Millisecond)
	assert.Equal(t, 1.5, args[3])
}
