package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/internal/middleware"
	"github.com/codexero/backend/pkg/router"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedis()
	s.loadEndpoints()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	address := fmt.Sprintf("%s:%s", s.cfg.ApiServer.Host, s.cfg.ApiServer.Port)
	s.server = &http.Server{
		Addr:    address,
		Handler: s.router.Handler(),
	}

	s.logger.Infof("Starting api server on %s", address)
	if s.cfg.ApiServer.Cert != "" && s.cfg.ApiServer.Key != "" {
		return s.server.ListenAndServeTLS(s.cfg.ApiServer.Cert, s.cfg.ApiServer.Key)
	}

	return s.server.ListenAndServe()
}

func (s *srv) migrate(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()

	ctx := xcontext.WithDB(context.Background(), s.db)
	if err := entity.MigrateTable(ctx); err != nil {
		return err
	}

	s.logger.Infof("Migration completed")
	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.cfg, s.logger, s.db)
	if s.redisClient != nil {
		s.router.WithRedisClient(s.redisClient)
	}

	public := s.router.Branch()
	router.POST(public, "/walletLogin", s.authDomain.WalletLogin)
	router.POST(public, "/walletVerify", s.authDomain.WalletVerify)
	router.POST(public, "/subscribeWaitlist", s.waitlistDomain.Subscribe)
	router.GET(public, "/getReferralStatus", s.referralDomain.GetStatus)
	router.GET(public, "/getReferralStats", s.referralDomain.GetStats)

	authed := s.router.Branch()
	authed.Before(middleware.Authenticate())
	router.POST(authed, "/verifyFollow", s.verificationDomain.VerifyFollow)
	router.POST(authed, "/verifyPost", s.verificationDomain.VerifyPost)
	router.POST(authed, "/verifyProfile", s.verificationDomain.VerifyProfile)
	router.POST(authed, "/verifyTelegram", s.verificationDomain.VerifyTelegram)
	router.POST(authed, "/verifyAll", s.verificationDomain.VerifyAll)
	router.POST(authed, "/issueReferral", s.referralDomain.Issue)
	router.POST(authed, "/redeemReferral", s.referralDomain.Redeem)
	router.POST(authed, "/deactivateReferral", s.referralDomain.Deactivate)
	router.POST(authed, "/uploadMetadata", s.fileDomain.UploadMetadata)
	router.GET(authed, "/checkEligibility", s.eligibilityDomain.Check)
}
