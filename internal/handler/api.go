package handler

import (
	"github.com/risegum/internal/landing"
	"github.com/risegum/internal/service"
	"github.com/risegum/internal/view"
	"gorm.io/gorm"
)

// Gateway is the subset of the backend client used by the landing page.
type Gateway interface {
	landing.Submitter
	landing.ContentFetcher
}

// Options configures optional collaborators of the API.
type Options struct {
	// Gateway 为空时落地页只渲染内置内容，提交表单会得到网络错误提示。
	Gateway       Gateway
	Welcome       *service.WelcomeSender
	AdminToken    string
	SiteURL       string
	RatePerMinute int
	SecureCookies bool
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	waitlist   *service.WaitlistService
	content    *service.ContentService
	status     *service.StatusService
	welcome    *service.WelcomeSender
	flow       *landing.Flow
	loader     *landing.ContentLoader
	limiter    *RateLimiter
	adminToken string
	meta       view.PageMeta
	secure     bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) *API {
	var submitter landing.Submitter = unavailableGateway{}
	var fetcher landing.ContentFetcher
	if opts.Gateway != nil {
		submitter = opts.Gateway
		fetcher = opts.Gateway
	}

	return &API{
		db:         gdb,
		waitlist:   service.NewWaitlistService(gdb),
		content:    service.NewContentService(gdb),
		status:     service.NewStatusService(gdb),
		welcome:    opts.Welcome,
		flow:       landing.NewFlow(submitter),
		loader:     landing.NewContentLoader(fetcher),
		limiter:    NewRateLimiter(opts.RatePerMinute),
		adminToken: opts.AdminToken,
		meta:       view.PageMeta{SiteURL: opts.SiteURL},
		secure:     opts.SecureCookies,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
