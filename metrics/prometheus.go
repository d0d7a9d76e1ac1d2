package metrics

import (
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// all metrics and middlewares for the REST API and mail pipeline
var (
	// to prevent metrics from being initialized multiple times
	isMetricsInitVar uint32 = 0

	// active REST API connections
	activeRESTConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_rest_connections",
			Help: "Number of active REST API connections",
		},
	)

	// response times for REST APIs
	responseTimeRESTAPI = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restapi_response_time_milliseconds",
			Help:    "REST API response time distributions",
			Buckets: []float64{1, 10, 50, 100, 200, 300, 400, 500},
		},
		[]string{"method", "endpoint"},
	)

	// size of the body for REST APIs
	requestSizeRESTAPI = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restapi_request_size_kilobytes",
			Help:    "REST API request size distributions",
			Buckets: []float64{200, 500, 900, 1500, 2000, 3000, 4000, 5000},
		},
		[]string{"method", "endpoint"},
	)

	responseSizeRESTAPI = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "restapi_response_size_kilobytes",
			Help:    "REST API response size distributions",
			Buckets: []float64{200, 500, 900, 1500, 2000, 3000, 4000, 5000},
		},
		[]string{"method", "endpoint"},
	)

	// Number of requests processed by REST API
	RESTRequestMetricsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rest_requests_processed_total",
		Help: "The total number of processed REST requests",
	}, []string{"method", "endpoint"})

	// Number of aliases generated over the API or CLI
	AliasesGeneratedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aliases_generated_total",
		Help: "The total number of aliases generated",
	})

	// Number of alias validations that matched a key
	ValidationsAcceptedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alias_validations_accepted_total",
		Help: "The total number of accepted alias validations",
	})

	// Number of alias validations that matched no key
	ValidationsRejectedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "alias_validations_rejected_total",
		Help: "The total number of rejected alias validations",
	})

	// Number of inbound messages received over forwarder webhooks
	WebhookMessagesReceivedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "webhook_messages_received_total",
		Help: "The total number of messages received over forwarder webhooks",
	})

	// Number of messages forwarded to real recipients
	MailForwardedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mail_forwarded_total",
		Help: "The total number of forwarded messages",
	})

	// Number of bounce messages sent back to senders
	MailBouncedMetricsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "mail_bounced_total",
		Help: "The total number of bounced messages",
	})

	// Latency of validating one inbound alias against the key ring
	AliasValidationProcessingLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "alias_validation_processing_latency_milliseconds",
		Help:    "Latency of alias validation against the key ring",
		Buckets: prometheus.LinearBuckets(1, 100, 10),
	})

	// Latency of delivering one forwarded message over the ESP API
	MailForwardProcessingLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "mail_forward_processing_latency_milliseconds",
		Help:    "Latency of forwarded message delivery",
		Buckets: prometheus.LinearBuckets(1, 100, 10),
	})
)

func setIsMetricsInit() {
	atomic.StoreUint32(&isMetricsInitVar, 1)
}

func isMetricsInit() bool {
	return atomic.LoadUint32(&isMetricsInitVar) == 1
}

func InitMetrics() {
	if !isMetricsInit() {
		setIsMetricsInit()

		// Metrics have to be registered to be exposed
		prometheus.MustRegister(activeRESTConnections)
		prometheus.MustRegister(responseTimeRESTAPI)
		prometheus.MustRegister(RESTRequestMetricsTotal)
		prometheus.MustRegister(AliasesGeneratedMetricsCount)
		prometheus.MustRegister(ValidationsAcceptedMetricsCount)
		prometheus.MustRegister(ValidationsRejectedMetricsCount)
		prometheus.MustRegister(WebhookMessagesReceivedMetricsCount)
		prometheus.MustRegister(MailForwardedMetricsCount)
		prometheus.MustRegister(MailBouncedMetricsCount)
		prometheus.MustRegister(AliasValidationProcessingLatency)
		prometheus.MustRegister(MailForwardProcessingLatency)
		prometheus.MustRegister(requestSizeRESTAPI)
		prometheus.MustRegister(responseSizeRESTAPI)

	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Increment the counter for the given endpoint:
		RESTRequestMetricsTotal.WithLabelValues(c.Request.Method, c.FullPath()).Inc()

		r := c.Request
		w := c.Writer

		// Start timing responseTime histogram
		start := time.Now()

		// Set activeConnections gauge
		activeRESTConnections.Inc()
		defer activeRESTConnections.Dec()

		c.Next()

		// after request

		// observe request size in kilobtyes
		if r.ContentLength > 0 {
			requestSizeRESTAPI.WithLabelValues(c.Request.Method, c.Request.URL.Path).Observe(float64(r.ContentLength) / 1024)
		}

		// set response size
		if w.Size() > 0 {
			responseSizeRESTAPI.WithLabelValues(c.Request.Method, c.Request.URL.Path).Observe(float64(w.Size()) / 1024)
		}

		// Set responseTime histogram
		latency := time.Since(start)
		responseTimeRESTAPI.WithLabelValues(c.Request.Method, c.Request.URL.Path).Observe(float64(latency.Milliseconds()))
	}
}
