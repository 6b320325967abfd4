package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/spf13/viper"

	"github.com/tessera-xyz/goapi/base/log"
)

const (
	ddClientsSize    = 16 // needs to be 2^n
	ddClientsIdxMask = ddClientsSize - 1

	// ddRate is the rate to pass metrics to datadog agent. 1 means always
	ddRate = 1
	// buffer 10 counters before sending to statsd
	bufferMetrics = 10
)

var (
	initOnce = sync.Once{}

	// DdHost is the datadog agent host, taken from config on first use
	DdHost = ""
	// DdPort is the datadog agent statsd port
	DdPort = 8125

	// ddClientsIdx is used for accessing ddClients by round robin scheduling
	ddClientsIdx = int32(0)
	ddClients    []statsCli
)

func initDDClient() {
	DdHost = viper.GetString("datadog_host")
	ddClients = make([]statsCli, ddClientsSize)
	for i := 0; i < ddClientsSize; i++ {
		// Init datadog client once so the buffer is counted together. Also it's better to
		// maintain one connection toward statsd agent
		addr := fmt.Sprintf("%s:%d", DdHost, DdPort)
		log.Log().WithFields(log.Fields{"addr": addr, "idx": i}).Info("connecting to datadog agent")

		var err error
		ddClients[i], err = statsd.NewBuffered(addr, bufferMetrics)
		if err != nil {
			log.Log().WithFields(log.Fields{"addr": addr, "err": err}).Panic(
				"can't talk to datadog agent")
		}
	}
}

type statsCli interface {
	Gauge(name string, value float64, tags []string, rate float64) error
	Count(name string, value int64, tags []string, rate float64) error
	Histogram(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// DDMetrics wraps datadog statsd clients with shared default tags.
type DDMetrics struct {
	ddTags []string
}

func (dm *DDMetrics) client() statsCli {
	initOnce.Do(initDDClient)
	i := atomic.AddInt32(&ddClientsIdx, 1) & ddClientsIdxMask
	return ddClients[i]
}

func (dm *DDMetrics) tags(tags []string) []string {
	return append(dm.ddTags, tags...)
}

// BumpAvg bumps the average for the given key.
// datadog doesn't have a function to compute average only, work-around with gauge.
func (dm *DDMetrics) BumpAvg(key string, val, rate float64, tags ...string) {
	if err := dm.client().Gauge(key, val, dm.tags(tags), rate); err != nil {
		log.Log().WithFields(log.Fields{"key": key, "err": err}).Warn("statsd Gauge failed")
	}
}

// BumpSum bumps the sum for the given key.
func (dm *DDMetrics) BumpSum(key string, val, rate float64, tags ...string) {
	if err := dm.client().Count(key, int64(val), dm.tags(tags), rate); err != nil {
		log.Log().WithFields(log.Fields{"key": key, "err": err}).Warn("statsd Count failed")
	}
}

// BumpHistogram bumps the histogram for the given key.
func (dm *DDMetrics) BumpHistogram(key string, val, rate float64, tags ...string) {
	if err := dm.client().Histogram(key, val, dm.tags(tags), rate); err != nil {
		log.Log().WithFields(log.Fields{"key": key, "err": err}).Warn("statsd Histogram failed")
	}
}

// BumpTime reports the elapsed time since start in milliseconds.
func (dm *DDMetrics) BumpTime(key string, start time.Time, rate float64, tags ...string) {
	elapsed := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond.Nanoseconds())
	if err := dm.client().TimeInMilliseconds(key, elapsed, dm.tags(tags), rate); err != nil {
		log.Log().WithFields(log.Fields{"key": key, "err": err}).Warn("statsd TimeInMilliseconds failed")
	}
}
