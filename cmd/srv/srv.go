package main

import (
	"net/http"

	"github.com/codexero/backend/config"
	"github.com/codexero/backend/internal/client"
	"github.com/codexero/backend/internal/domain"
	"github.com/codexero/backend/internal/domain/socialverify"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/api/pinata"
	"github.com/codexero/backend/pkg/api/telegram"
	"github.com/codexero/backend/pkg/api/twitterproxy"
	"github.com/codexero/backend/pkg/crypto"
	"github.com/codexero/backend/pkg/logger"
	"github.com/codexero/backend/pkg/router"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App

	cfg    config.Configs
	logger logger.Logger

	db          *gorm.DB
	redisClient *redis.Client

	twitterEndpoint  twitterproxy.IEndpoint
	telegramEndpoint telegram.IEndpoint
	pinataEndpoint   pinata.IEndpoint
	mintContract     client.MintContractCaller

	referralRepo     repository.ReferralRepository
	verificationRepo repository.ReferralVerificationRepository
	profileRepo      repository.UserProfileRepository
	waitlistRepo     repository.WaitlistRepository

	authDomain         domain.AuthDomain
	verificationDomain domain.VerificationDomain
	referralDomain     domain.ReferralDomain
	eligibilityDomain  domain.EligibilityDomain
	waitlistDomain     domain.WaitlistDomain
	fileDomain         domain.FileDomain

	router *router.Router
	server *http.Server
}

func (s *srv) loadRepos() {
	s.referralRepo = repository.NewReferralRepository()
	s.verificationRepo = repository.NewReferralVerificationRepository()
	s.profileRepo = repository.NewUserProfileRepository()
	s.waitlistRepo = repository.NewWaitlistRepository()
}

func (s *srv) loadDomains() {
	clock := socialverify.NewRealClock()

	s.authDomain = domain.NewAuthDomain()
	s.verificationDomain = domain.NewVerificationDomain(
		socialverify.NewFollowVerifier(s.twitterEndpoint, s.cfg.Verification),
		socialverify.NewPostVerifier(s.twitterEndpoint, clock, s.cfg.Verification),
		socialverify.NewProfileInspector(s.twitterEndpoint),
		s.telegramEndpoint,
		s.profileRepo,
	)
	s.referralDomain = domain.NewReferralDomain(
		s.referralRepo, s.verificationRepo, s.mintContract, crypto.GenerateReferralCode)
	s.eligibilityDomain = domain.NewEligibilityDomain(s.referralRepo, s.mintContract)
	s.waitlistDomain = domain.NewWaitlistDomain(s.waitlistRepo)
	s.fileDomain = domain.NewFileDomain(s.pinataEndpoint, s.mintContract)
}
