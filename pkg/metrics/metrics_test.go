package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestValidationsTotal(t *testing.T) {
	before := testutil.ToFloat64(ValidationsTotal.WithLabelValues("phone", "live"))
	ValidationsTotal.WithLabelValues("phone", "live").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationsTotal.WithLabelValues("phone", "live")))
}

func TestObserveRemoteCall(t *testing.T) {
	ObserveRemoteCall("validate_hlr", "ok", time.Now().Add(-20*time.Millisecond))
	assert.Equal(t, 1, testutil.CollectAndCount(RemoteCallDuration, "databowl_request_duration_seconds"))
}
