// Package metrics defines and registers all custom Prometheus metrics for the
// publishing API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "publishing"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensRefreshedTotal counts successful refresh token rotations.
var TokensRefreshedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_refreshed_total",
		Help:      "Total number of refresh tokens exchanged for a new session.",
	},
)

// ── Content metrics ───────────────────────────────────────────────────────────

var ArticlesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_created_total",
		Help:      "Total number of articles created.",
	},
)

var ArticlesPublishedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "articles_published_total",
		Help:      "Total number of publish requests served for articles.",
	},
)

// ArticleViewsTotal counts reads of a single published article.
var ArticleViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "article_views_total",
		Help:      "Total number of published article reads.",
	},
)

var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments submitted for moderation.",
	},
)

// ImagesUploadedTotal counts stored images.
// Label:
//   - field: the multipart field the image came from ("picture", "coverImage")
var ImagesUploadedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_uploaded_total",
		Help:      "Total number of images uploaded, by form field.",
	},
	[]string{"field"},
)

// ── Mail metrics ──────────────────────────────────────────────────────────────

// MailSentTotal counts background mail outcomes.
// Label:
//   - result: "ok", "error" or "dropped" (queue full)
var MailSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sent_total",
		Help:      "Total number of outgoing mails, by delivery result.",
	},
	[]string{"result"},
)

// MailQueueDepth tracks the number of mails waiting for a worker.
var MailQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mail_queue_depth",
		Help:      "Current number of mails pending in the dispatcher queue.",
	},
)
