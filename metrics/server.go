package metrics

import (
	"expvar"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Expvar metrics
	ScoresRecorded           = expvar.NewInt("scores_recorded")
	DuplicateScores          = expvar.NewInt("duplicate_scores")
	ScoresReprocessed        = expvar.NewInt("scores_reprocessed")
	SummariesPosted          = expvar.NewInt("summaries_posted")
	AbsenteeNotices          = expvar.NewInt("absentee_notices")
	SolutionLookupFailures   = expvar.NewInt("solution_lookup_failures")
	ImageLookupFailures      = expvar.NewInt("image_lookup_failures")
	DiscordMessageRecieved   = expvar.NewInt("discord_message_recieved")
	DiscordMessageSent       = expvar.NewInt("discord_message_sent")
	EmptyLLMResponseCount    = expvar.NewInt("empty_llm_response_count")
	SuccessfulLLMGenCount    = expvar.NewInt("successful_llm_gen_count")
	FailedLLMGenCount        = expvar.NewInt("failed_llm_gen_count")
	InsultFallbacksUsedCount = expvar.NewInt("insult_fallbacks_used_count")

	// Prometheus metrics with labels
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strands_command_total",
			Help: "Total number of commands invoked by command type",
		},
		[]string{"command"},
	)

	CommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strands_command_errors",
			Help: "Total number of command errors by command type",
		},
		[]string{"command"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strands_command_duration_seconds",
			Help:    "Duration of command execution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
)

type Server struct {
	*http.Server
}

func SetupServer(addr string) *Server {

	// pprof is setup by importing the net/http/pprof package
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// setup expvar cache
	ScoresRecorded.Set(0)
	DuplicateScores.Set(0)
	ScoresReprocessed.Set(0)
	SummariesPosted.Set(0)
	AbsenteeNotices.Set(0)
	SolutionLookupFailures.Set(0)
	ImageLookupFailures.Set(0)
	DiscordMessageRecieved.Set(0)
	DiscordMessageSent.Set(0)
	EmptyLLMResponseCount.Set(0)
	SuccessfulLLMGenCount.Set(0)
	FailedLLMGenCount.Set(0)
	InsultFallbacksUsedCount.Set(0)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewExpvarCollector(
			map[string]*prometheus.Desc{
				"scores_recorded":             prometheus.NewDesc("scores_recorded", "number of strands scores recorded", nil, nil),
				"duplicate_scores":            prometheus.NewDesc("duplicate_scores", "number of duplicate score submissions ignored", nil, nil),
				"scores_reprocessed":          prometheus.NewDesc("scores_reprocessed", "number of scores rewritten by a reprocess pass", nil, nil),
				"summaries_posted":            prometheus.NewDesc("summaries_posted", "number of leaderboard summaries posted", nil, nil),
				"absentee_notices":            prometheus.NewDesc("absentee_notices", "number of who-is-left notices posted", nil, nil),
				"solution_lookup_failures":    prometheus.NewDesc("solution_lookup_failures", "number of failed puzzle solution lookups", nil, nil),
				"image_lookup_failures":       prometheus.NewDesc("image_lookup_failures", "number of failed reaction image lookups", nil, nil),
				"discord_message_recieved":    prometheus.NewDesc("discord_message_recieved", "number of times discord received a message", nil, nil),
				"discord_message_sent":        prometheus.NewDesc("discord_message_sent", "number of times discord sent a message", nil, nil),
				"empty_llm_response_count":    prometheus.NewDesc("empty_llm_response_count", "number of times llm responded with an empty string", nil, nil),
				"successful_llm_gen_count":    prometheus.NewDesc("successful_llm_gen_count", "number of times llm generated a valid response", nil, nil),
				"failed_llm_gen_count":        prometheus.NewDesc("failed_llm_gen_count", "number of times errors occured in llm generation", nil, nil),
				"insult_fallbacks_used_count": prometheus.NewDesc("insult_fallbacks_used_count", "number of times a canned insult was used instead of a generated one", nil, nil),
			},
		),
		CommandTotal,
		CommandErrors,
		CommandDuration,
	)

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/healthz", healthzHandler)
	return &Server{server}
}

// healthzHandler returns a simple health check response
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Run() {
	_ = s.ListenAndServe()
}
