package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/codexero/backend/internal/domain/socialverify"
	"github.com/codexero/backend/internal/entity"
	"github.com/codexero/backend/internal/model"
	"github.com/codexero/backend/internal/repository"
	"github.com/codexero/backend/pkg/api/telegram"
	"github.com/codexero/backend/pkg/errorx"
	"github.com/codexero/backend/pkg/xcontext"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type VerificationDomain interface {
	VerifyFollow(ctx context.Context, req *model.VerifyFollowRequest) (*model.VerifyFollowResponse, error)
	VerifyPost(ctx context.Context, req *model.VerifyPostRequest) (*model.VerifyPostResponse, error)
	VerifyProfile(ctx context.Context, req *model.VerifyProfileRequest) (*model.VerifyProfileResponse, error)
	VerifyTelegram(ctx context.Context, req *model.VerifyTelegramRequest) (*model.VerifyTelegramResponse, error)
	VerifyAll(ctx context.Context, req *model.VerifyAllRequest) (*model.VerifyAllResponse, error)
}

type verificationDomain struct {
	followVerifier   *socialverify.FollowVerifier
	postVerifier     *socialverify.PostVerifier
	profileInspector *socialverify.ProfileInspector
	telegramEndpoint telegram.IEndpoint
	profileRepo      repository.UserProfileRepository
}

func NewVerificationDomain(
	followVerifier *socialverify.FollowVerifier,
	postVerifier *socialverify.PostVerifier,
	profileInspector *socialverify.ProfileInspector,
	telegramEndpoint telegram.IEndpoint,
	profileRepo repository.UserProfileRepository,
) *verificationDomain {
	return &verificationDomain{
		followVerifier:   followVerifier,
		postVerifier:     postVerifier,
		profileInspector: profileInspector,
		telegramEndpoint: telegramEndpoint,
		profileRepo:      profileRepo,
	}
}

// stepUpdate is a passed check waiting to be written to the user profile.
// The profile write is a read-merge-write of the metadata record, so updates
// must be applied one at a time.
type stepUpdate struct {
	step    string
	profile *entity.UserProfile
}

func (d *verificationDomain) VerifyFollow(
	ctx context.Context, req *model.VerifyFollowRequest,
) (*model.VerifyFollowResponse, error) {
	resp, update, err := d.checkFollow(ctx, req)
	if err != nil {
		return nil, err
	}

	d.applyUpdate(ctx, update)
	return resp, nil
}

func (d *verificationDomain) checkFollow(
	ctx context.Context, req *model.VerifyFollowRequest,
) (*model.VerifyFollowResponse, *stepUpdate, error) {
	if req.TwitterUserID == "" || req.TargetUserID == "" {
		return nil, nil, errorx.New(errorx.BadRequest, "Missing twitter user id or target")
	}

	wallet := xcontext.RequestWallet(ctx)
	if d.recentlyPassed(ctx, "follow", wallet) {
		return &model.VerifyFollowResponse{IsFollowing: true,
			FallbackReason: string(socialverify.FallbackNone)}, nil, nil
	}

	result := d.followVerifier.CheckFollowing(ctx, req.TwitterUserID, req.TargetUserID)

	var update *stepUpdate
	if result.IsFollowing {
		update = &stepUpdate{step: "follow", profile: &entity.UserProfile{
			TwitterUserID:    req.TwitterUserID,
			FollowVerified:   true,
			FollowVerifiedAt: now(),
			Metadata: entity.VerificationMetadata{Follow: &entity.FollowRecord{
				UsedFallback:    result.UsedFallback,
				FallbackReason:  fallbackField(result.UsedFallback, result.FallbackReason),
				PagesScanned:    result.PagesScanned,
				AccountsScanned: result.AccountsScanned,
			}},
		}}
	}

	return &model.VerifyFollowResponse{
		IsFollowing:     result.IsFollowing,
		UsedFallback:    result.UsedFallback,
		FallbackReason:  string(result.FallbackReason),
		PagesScanned:    result.PagesScanned,
		AccountsScanned: result.AccountsScanned,
	}, update, nil
}

func (d *verificationDomain) VerifyPost(
	ctx context.Context, req *model.VerifyPostRequest,
) (*model.VerifyPostResponse, error) {
	resp, update, err := d.checkPost(ctx, req)
	if err != nil {
		return nil, err
	}

	d.applyUpdate(ctx, update)
	return resp, nil
}

func (d *verificationDomain) checkPost(
	ctx context.Context, req *model.VerifyPostRequest,
) (*model.VerifyPostResponse, *stepUpdate, error) {
	if req.TwitterUserID == "" {
		return nil, nil, errorx.New(errorx.BadRequest, "Missing twitter user id")
	}

	if req.Content == "" && req.TargetUserID == "" {
		return nil, nil, errorx.New(errorx.BadRequest, "Missing content and target")
	}

	wallet := xcontext.RequestWallet(ctx)
	if d.recentlyPassed(ctx, "post", wallet) {
		return &model.VerifyPostResponse{HasPosted: true,
			FallbackReason: string(socialverify.FallbackNone),
			MatchType:      string(socialverify.MatchNone)}, nil, nil
	}

	result := d.postVerifier.CheckPosted(ctx, req.TwitterUserID, req.Content, req.TargetUserID)

	var update *stepUpdate
	if result.HasPosted {
		update = &stepUpdate{step: "post", profile: &entity.UserProfile{
			TwitterUserID:  req.TwitterUserID,
			PostVerified:   true,
			PostVerifiedAt: now(),
			Metadata: entity.VerificationMetadata{Post: &entity.PostRecord{
				UsedFallback:   result.UsedFallback,
				FallbackReason: fallbackField(result.UsedFallback, result.FallbackReason),
				MatchedTweetID: result.MatchedTweetID,
				MatchType:      string(result.MatchType),
				AttemptsMade:   result.AttemptsMade,
			}},
		}}
	}

	return &model.VerifyPostResponse{
		HasPosted:      result.HasPosted,
		UsedFallback:   result.UsedFallback,
		FallbackReason: string(result.FallbackReason),
		MatchedTweetID: result.MatchedTweetID,
		MatchType:      string(result.MatchType),
		AttemptsMade:   result.AttemptsMade,
	}, update, nil
}

func (d *verificationDomain) VerifyProfile(
	ctx context.Context, req *model.VerifyProfileRequest,
) (*model.VerifyProfileResponse, error) {
	resp, update, err := d.checkProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	d.applyUpdate(ctx, update)
	return resp, nil
}

func (d *verificationDomain) checkProfile(
	ctx context.Context, req *model.VerifyProfileRequest,
) (*model.VerifyProfileResponse, *stepUpdate, error) {
	if req.TwitterUserID == "" || len(req.Sequences) == 0 {
		return nil, nil, errorx.New(errorx.BadRequest, "Missing twitter user id or sequences")
	}

	wallet := xcontext.RequestWallet(ctx)
	if d.recentlyPassed(ctx, "profile", wallet) {
		return &model.VerifyProfileResponse{Exists: true, Verified: true,
			FallbackReason: string(socialverify.FallbackNone)}, nil, nil
	}

	result := d.profileInspector.ContainsSequence(ctx, req.TwitterUserID, req.Sequences)

	var update *stepUpdate
	if result.Verified {
		update = &stepUpdate{step: "profile", profile: &entity.UserProfile{
			TwitterUserID:     req.TwitterUserID,
			ProfileVerified:   true,
			ProfileVerifiedAt: now(),
			Metadata: entity.VerificationMetadata{Profile: &entity.ProfileRecord{
				UsedFallback:     result.UsedFallback,
				FallbackReason:   fallbackField(result.UsedFallback, result.FallbackReason),
				MatchedSequences: result.MatchedSequences,
			}},
		}}
	}

	return &model.VerifyProfileResponse{
		Exists:           result.Verified || len(result.MatchedSequences) > 0 || result.UsedFallback,
		Verified:         result.Verified,
		MatchedSequences: result.MatchedSequences,
		UsedFallback:     result.UsedFallback,
		FallbackReason:   string(result.FallbackReason),
	}, update, nil
}

func (d *verificationDomain) VerifyTelegram(
	ctx context.Context, req *model.VerifyTelegramRequest,
) (*model.VerifyTelegramResponse, error) {
	resp, update, err := d.checkTelegram(ctx, req)
	if err != nil {
		return nil, err
	}

	d.applyUpdate(ctx, update)
	return resp, nil
}

func (d *verificationDomain) checkTelegram(
	ctx context.Context, req *model.VerifyTelegramRequest,
) (*model.VerifyTelegramResponse, *stepUpdate, error) {
	if req.TelegramUserID == "" {
		return nil, nil, errorx.New(errorx.BadRequest, "Missing telegram user id")
	}

	channelID := xcontext.Configs(ctx).Telegram.ChannelID

	member, err := d.telegramEndpoint.GetChatMember(ctx, channelID, req.TelegramUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get chat member %s: %v", req.TelegramUserID, err)
		return nil, nil, errorx.New(errorx.Unavailable, "Telegram unavailable, please retry")
	}

	var update *stepUpdate
	if member.IsMember() {
		update = &stepUpdate{profile: &entity.UserProfile{
			TelegramUserID:     req.TelegramUserID,
			TelegramVerified:   true,
			TelegramVerifiedAt: now(),
			Metadata: entity.VerificationMetadata{
				Telegram: &entity.TelegramRecord{Status: member.Status},
			},
		}}
	}

	return &model.VerifyTelegramResponse{
		IsMember: member.IsMember(),
		Status:   member.Status,
	}, update, nil
}

// VerifyAll runs the four checks concurrently. A check returning an error
// cancels the rest; a check merely failing does not. Profile writes happen
// only after every check has finished, one at a time, so concurrent steps
// never clobber each other's metadata merge.
func (d *verificationDomain) VerifyAll(
	ctx context.Context, req *model.VerifyAllRequest,
) (*model.VerifyAllResponse, error) {
	resp := &model.VerifyAllResponse{}
	updates := make([]*stepUpdate, 4)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		follow, update, err := d.checkFollow(gctx, &model.VerifyFollowRequest{
			TwitterUserID: req.TwitterUserID,
			TargetUserID:  req.TargetUserID,
		})
		if err != nil {
			return err
		}

		resp.Follow, updates[0] = *follow, update
		return nil
	})

	g.Go(func() error {
		post, update, err := d.checkPost(gctx, &model.VerifyPostRequest{
			TwitterUserID: req.TwitterUserID,
			Content:       req.Content,
			TargetUserID:  req.TargetUserID,
		})
		if err != nil {
			return err
		}

		resp.Post, updates[1] = *post, update
		return nil
	})

	g.Go(func() error {
		profile, update, err := d.checkProfile(gctx, &model.VerifyProfileRequest{
			TwitterUserID: req.TwitterUserID,
			Sequences:     []string{"codexero"},
		})
		if err != nil {
			return err
		}

		resp.Profile, updates[2] = *profile, update
		return nil
	})

	g.Go(func() error {
		tg, update, err := d.checkTelegram(gctx, &model.VerifyTelegramRequest{
			TelegramUserID: req.TelegramUserID,
		})
		if err != nil {
			return err
		}

		resp.Telegram, updates[3] = *tg, update
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, update := range updates {
		d.applyUpdate(ctx, update)
	}

	resp.Completed = resp.Follow.IsFollowing && resp.Post.HasPosted &&
		resp.Profile.Verified && resp.Telegram.IsMember
	return resp, nil
}

// applyUpdate persists a passed step and marks its reclaim key. A nil update
// means the step did not pass (or was answered from cache) and writes nothing.
func (d *verificationDomain) applyUpdate(ctx context.Context, update *stepUpdate) {
	if update == nil {
		return
	}

	wallet := xcontext.RequestWallet(ctx)
	d.persistStep(ctx, wallet, update.profile)
	if update.step != "" {
		d.markPassed(ctx, update.step, wallet)
	}
}

// persistStep upserts the caller profile and overlays the passed step.
// Persistence failures are logged, not returned: the user did pass the check.
func (d *verificationDomain) persistStep(
	ctx context.Context, wallet string, update *entity.UserProfile,
) {
	if wallet == "" {
		return
	}

	profile := &entity.UserProfile{
		Base:           entity.Base{ID: uuid.NewString()},
		WalletAddress:  wallet,
		TwitterUserID:  update.TwitterUserID,
		TelegramUserID: update.TelegramUserID,
	}
	if err := d.profileRepo.Upsert(ctx, profile); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert profile of %s: %v", wallet, err)
		return
	}

	if err := d.profileRepo.UpdateVerification(ctx, wallet, update); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update verification of %s: %v", wallet, err)
	}
}

// recentlyPassed consults the reclaim cache. No redis means no cache, every
// request goes to the provider.
func (d *verificationDomain) recentlyPassed(ctx context.Context, step, wallet string) bool {
	client := xcontext.RedisClient(ctx)
	if client == nil || wallet == "" {
		return false
	}

	n, err := client.Exists(ctx, reclaimKey(step, wallet)).Result()
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot check reclaim cache: %v", err)
		return false
	}

	return n > 0
}

func (d *verificationDomain) markPassed(ctx context.Context, step, wallet string) {
	client := xcontext.RedisClient(ctx)
	if client == nil || wallet == "" {
		return
	}

	delay := xcontext.Configs(ctx).Verification.ReclaimDelay
	err := client.Set(ctx, reclaimKey(step, wallet), "1", delay).Err()
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot set reclaim cache: %v", err)
	}
}

func reclaimKey(step, wallet string) string {
	return fmt.Sprintf("verify:%s:%s", step, wallet)
}

func fallbackField(used bool, reason socialverify.FallbackReason) string {
	if !used {
		return ""
	}

	return string(reason)
}

func now() *time.Time {
	t := time.Now()
	return &t
}
