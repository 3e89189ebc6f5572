package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gigpaisa/gigpaisa_backend/internal/apperrors"
	"github.com/gigpaisa/gigpaisa_backend/internal/core/domain"
	portsrepo "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/repositories"
	portssvc "github.com/gigpaisa/gigpaisa_backend/internal/core/ports/services"
	"github.com/gigpaisa/gigpaisa_backend/internal/dto"
	"github.com/gigpaisa/gigpaisa_backend/internal/middleware"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils"
	"github.com/gigpaisa/gigpaisa_backend/internal/utils/budgeting"
)

// The rewards jar auto-created on first challenge completion. Practically
// unlimited target, far-future deadline.
var (
	challengeRewardsTarget   = decimal.NewFromInt(999999999)
	challengeRewardsDeadline = time.Date(2099, 12, 31, 0, 0, 0, 0, time.UTC)
)

// challengeService provides the daily challenge operations.
type challengeService struct {
	challengeRepo portsrepo.ChallengeRepositoryFacade
	txnRepo       portsrepo.TransactionRepositoryFacade
	jarRepo       portsrepo.JarRepositoryFacade
	budgetSvc     portssvc.BudgetWriterSvc
	cashflowSvc   portssvc.CashflowWriterSvc
}

// NewChallengeService creates a new ChallengeService.
func NewChallengeService(challengeRepo portsrepo.ChallengeRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, jarRepo portsrepo.JarRepositoryFacade, budgetSvc portssvc.BudgetWriterSvc, cashflowSvc portssvc.CashflowWriterSvc) portssvc.ChallengeSvcFacade {
	return &challengeService{
		challengeRepo: challengeRepo,
		txnRepo:       txnRepo,
		jarRepo:       jarRepo,
		budgetSvc:     budgetSvc,
		cashflowSvc:   cashflowSvc,
	}
}

var _ portssvc.ChallengeSvcFacade = (*challengeService)(nil)

func (s *challengeService) ListTodaysChallenges(ctx context.Context, userID string) ([]dto.ChallengeResponse, error) {
	dayStart := truncateToDay(time.Now())
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	challenges, err := s.challengeRepo.ListChallengesAssignedBetween(ctx, userID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's challenges: %w", err)
	}
	return dto.ToChallengeResponses(challenges), nil
}

func (s *challengeService) CompleteChallenge(ctx context.Context, userID, challengeID string, req dto.CompleteChallengeRequest) (*dto.CompleteChallengeResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()

	challenge, err := s.challengeRepo.FindChallengeByID(ctx, userID, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find challenge %s: %w", challengeID, err)
	}

	actualAmount := challenge.AmountPaise
	if req.ActualAmountPaise != nil {
		actualAmount = *req.ActualAmountPaise
	}
	completion := domain.ChallengeCompletion{
		ActualAmountPaise: actualAmount,
		CompletedAt:       now,
	}

	// The status=active guard in the repository makes double completion a
	// no-op race loser rather than a double reward.
	claimed, err := s.challengeRepo.MarkChallengeCompleted(ctx, userID, challengeID, completion)
	if err != nil {
		return nil, fmt.Errorf("failed to complete challenge %s: %w", challengeID, err)
	}
	if !claimed {
		return nil, fmt.Errorf("%w: challenge not active or already completed", apperrors.ErrConflict)
	}
	challenge.Status = domain.ChallengeCompleted
	challenge.Completion = &completion

	// Reward lands in the ledger as income, then in the rewards jar.
	rewardTxn := domain.Transaction{
		TxID:        fmt.Sprintf("tx_challenge_%s_%s", challengeID, uuid.NewString()),
		UserID:      userID,
		Type:        domain.Income,
		AmountPaise: challenge.RewardPaise,
		Category:    "challenge_reward",
		Merchant:    "Daily Challenge",
		Method:      domain.MethodCash,
		Timestamp:   now,
		Source:      domain.SourceManual,
		Notes:       "Challenge completed: " + challenge.Title,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	if err := s.txnRepo.SaveTransaction(ctx, rewardTxn, budgeting.MapTransactionCategory(rewardTxn.Category, rewardTxn.Merchant, rewardTxn.Notes)); err != nil {
		return nil, fmt.Errorf("failed to record challenge reward: %w", err)
	}

	// The reward is an ordinary ledger write, so the derived caches refresh
	// the same way they do after a transaction. A refresh failure never fails
	// the completion; the caches self-heal on the next read.
	if err := s.budgetSvc.RefreshWeek(ctx, userID, now); err != nil {
		logger.Error("Weekly budget refresh failed after challenge reward", slog.String("error", err.Error()))
	}
	if err := s.cashflowSvc.RefreshDay(ctx, userID, now); err != nil {
		logger.Error("Daily cashflow refresh failed after challenge reward", slog.String("error", err.Error()))
	}

	jar, err := s.rewardsJar(ctx, userID)
	if err != nil {
		return nil, err
	}
	rewardRupees := utils.PaiseToRupees(challenge.RewardPaise)
	deposit := domain.JarDeposit{
		DepositID: "dep_" + uuid.NewString(),
		Amount:    rewardRupees,
		Date:      now,
	}
	jar, _, err = s.jarRepo.DepositToJar(ctx, userID, jar.JarID, deposit)
	if err != nil {
		return nil, fmt.Errorf("failed to deposit reward to jar: %w", err)
	}
	logger.Info("Challenge completed", slog.String("challenge_id", challengeID), slog.Int64("reward_paise", challenge.RewardPaise))

	dashboard, err := s.dashboardFigures(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	return &dto.CompleteChallengeResponse{
		Message:           fmt.Sprintf("Challenge completed! ₹%s saved to %s", rewardRupees.String(), jar.Title),
		Challenge:         dto.ToChallengeResponse(challenge),
		RewardTransaction: dto.ToTransactionResponse(&rewardTxn),
		Jar:               dto.ToJarResponse(jar, now),
		Dashboard:         *dashboard,
	}, nil
}

// rewardsJar finds the user's active Challenge Rewards jar, creating it on
// first use.
func (s *challengeService) rewardsJar(ctx context.Context, userID string) (*domain.SavingsJar, error) {
	jar, err := s.jarRepo.FindActiveJarByTitle(ctx, userID, domain.ChallengeRewardsJarTitle)
	if err == nil {
		return jar, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to look up rewards jar: %w", err)
	}

	now := time.Now()
	created := domain.SavingsJar{
		JarID:    "jar_" + uuid.NewString(),
		UserID:   userID,
		Title:    domain.ChallengeRewardsJarTitle,
		Target:   challengeRewardsTarget,
		Saved:    decimal.Zero,
		Deadline: challengeRewardsDeadline,
		Status:   domain.JarActive,
		Icon:     "trophy",
		Color:    "#F59E0B",
		Bg:       "bg-amber-900",
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.jarRepo.SaveJar(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create rewards jar: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Challenge Rewards jar created", slog.String("jar_id", created.JarID))
	return &created, nil
}

// dashboardFigures computes the headline totals shown after a completion,
// all in rupees.
func (s *challengeService) dashboardFigures(ctx context.Context, userID string, now time.Time) (*dto.DashboardFigures, error) {
	income, err := s.txnRepo.SumAmountByType(ctx, userID, domain.Income, portsrepo.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum income: %w", err)
	}
	expense, err := s.txnRepo.SumAmountByType(ctx, userID, domain.Expense, portsrepo.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	totalSaved, err := s.jarRepo.SumSavedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum jar savings: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthlyDeposits, depositCount, err := s.jarRepo.SumDepositsSince(ctx, userID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly deposits: %w", err)
	}

	totalIncome := utils.PaiseToRupees(income)
	totalExpenses := utils.PaiseToRupees(expense)
	return &dto.DashboardFigures{
		TotalIncome:     totalIncome,
		TotalExpenses:   totalExpenses,
		TotalSavings:    totalSaved,
		UnallocatedCash: totalIncome.Sub(totalExpenses).Sub(totalSaved),
		MonthlySavings:  monthlyDeposits,
		MonthlyDeposits: depositCount,
	}, nil
}

func (s *challengeService) GetStats(ctx context.Context, userID string) (*dto.ChallengeStatsResponse, error) {
	now := time.Now()
	dayStart := truncateToDay(now)
	weekStart, _ := budgeting.WeekBounds(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	today, err := s.challengeRepo.CountCompletedSince(ctx, userID, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's completions: %w", err)
	}
	thisWeek, err := s.challengeRepo.CountCompletedSince(ctx, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count this week's completions: %w", err)
	}
	thisMonth, err := s.challengeRepo.CountCompletedSince(ctx, userID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to count this month's completions: %w", err)
	}
	rewards, err := s.challengeRepo.SumRewardsCompletedSince(ctx, userID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly rewards: %w", err)
	}

	stats := domain.ChallengeStats{
		Today:               today,
		ThisWeek:            thisWeek,
		ThisMonth:           thisMonth,
		MonthlyRewardsPaise: rewards,
	}
	resp := dto.ToChallengeStatsResponse(&stats)
	return &resp, nil
}
