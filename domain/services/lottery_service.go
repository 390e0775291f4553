package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
)

// drawHour is the hour of day (local to the configured location) at which
// draws take place, on Thursdays and Sundays.
const drawHour = 20

// lotteryService implements business logic for ticket purchase and settlement
type lotteryService struct {
	drawRepo      interfaces.DrawRepository
	ticketRepo    interfaces.TicketRepository
	ledger        interfaces.LedgerService
	defaultJackpot int64
	location      *time.Location
}

// NewLotteryService creates a new lottery service. The default jackpot is
// used when a draw has to be created lazily; location anchors the
// Thursday/Sunday 20:00 draw schedule.
func NewLotteryService(
	drawRepo interfaces.DrawRepository,
	ticketRepo interfaces.TicketRepository,
	ledger interfaces.LedgerService,
	defaultJackpot int64,
	location *time.Location,
) interfaces.LotteryService {
	if location == nil {
		location = time.UTC
	}
	return &lotteryService{
		drawRepo:       drawRepo,
		ticketRepo:     ticketRepo,
		ledger:         ledger,
		defaultJackpot: defaultJackpot,
		location:       location,
	}
}

// NextDrawTime returns the next Thursday or Sunday 20:00 strictly after now
func (s *lotteryService) NextDrawTime(now time.Time) time.Time {
	now = now.In(s.location)

	for days := 0; ; days++ {
		candidate := now.AddDate(0, 0, days)
		if candidate.Weekday() != time.Thursday && candidate.Weekday() != time.Sunday {
			continue
		}
		slot := time.Date(candidate.Year(), candidate.Month(), candidate.Day(), drawHour, 0, 0, 0, s.location)
		if slot.After(now) {
			return slot
		}
	}
}

// CurrentDraw returns the scheduled draw new tickets attach to, lazily
// creating one for the next draw slot when none exists
func (s *lotteryService) CurrentDraw(ctx context.Context) (*entities.Draw, error) {
	drawDate := s.NextDrawTime(time.Now())

	draw, err := s.drawRepo.GetOrCreateScheduledDraw(ctx, drawDate, s.defaultJackpot)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create scheduled draw: %w", err)
	}

	return draw, nil
}

// PurchaseTicket buys one lottery ticket for a user
func (s *lotteryService) PurchaseTicket(ctx context.Context, userID uuid.UUID, numbers []int32) (*interfaces.PurchaseResult, error) {
	if reason, ok := entities.ValidateSelection(numbers); !ok {
		return nil, &entities.InvalidSelectionError{Reason: reason}
	}

	draw, err := s.CurrentDraw(ctx)
	if err != nil {
		return nil, err
	}

	// Debit before creating the ticket; both live in the same unit of work,
	// so a failure on either side leaves no partial state behind.
	result, err := s.ledger.ApplyBalanceDelta(ctx, userID, -entities.TicketCostILS,
		entities.TransactionTypeTicketPurchase,
		fmt.Sprintf("Lottery ticket for draw #%d", draw.ID))
	if err != nil {
		return nil, err
	}

	ticket := &entities.Ticket{
		UserID:  userID,
		DrawID:  draw.ID,
		Numbers: numbers,
		CostILS: entities.TicketCostILS,
	}
	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return &interfaces.PurchaseResult{
		Ticket:     ticket,
		Draw:       draw,
		TotalCost:  entities.TicketCostILS,
		NewBalance: result.BalanceAfter,
	}, nil
}

// CompleteDraw transitions a draw from scheduled to completed with the given
// winning numbers and returns the draw's tickets for settlement. The status
// transition is the idempotency guard: a draw can only ever be completed
// once, so tickets cannot be paid twice.
func (s *lotteryService) CompleteDraw(ctx context.Context, drawID int64, winningNumbers []int32) (*entities.Draw, []*entities.Ticket, error) {
	if reason, ok := entities.ValidateSelection(winningNumbers); !ok {
		return nil, nil, &entities.InvalidWinningNumbersError{Reason: reason}
	}

	draw, err := s.drawRepo.GetByIDForUpdate(ctx, drawID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lock draw: %w", err)
	}
	if draw == nil {
		return nil, nil, &entities.NotFoundError{Kind: "draw", ID: fmt.Sprint(drawID)}
	}
	if !draw.IsScheduled() {
		return nil, nil, &entities.DrawNotScheduledError{DrawID: drawID, Status: draw.Status}
	}

	completed, err := s.drawRepo.CompleteDraw(ctx, drawID, winningNumbers)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to complete draw: %w", err)
	}
	if !completed {
		return nil, nil, &entities.DrawNotScheduledError{DrawID: drawID, Status: draw.Status}
	}
	draw.Complete(winningNumbers)

	tickets, err := s.ticketRepo.GetByDraw(ctx, drawID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tickets for draw %d: %w", drawID, err)
	}

	return draw, tickets, nil
}

// SettleTicket resolves one ticket against a completed draw's result. The
// outcome write and the prize payout share the caller's unit of work, so a
// ticket is either fully settled or untouched.
func (s *lotteryService) SettleTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*interfaces.TicketSettlement, error) {
	matches := ticket.CountMatches(draw.WinningNumbers)
	prize := entities.PrizeForMatches(matches, draw.JackpotAmount)
	isWinner := prize > 0

	recorded, err := s.ticketRepo.RecordResult(ctx, ticket.ID, matches, prize, isWinner)
	if err != nil {
		return nil, fmt.Errorf("failed to record ticket result: %w", err)
	}
	if !recorded {
		return nil, fmt.Errorf("ticket %d already settled", ticket.ID)
	}

	if prize > 0 {
		if _, err := s.ledger.ApplyBalanceDelta(ctx, ticket.UserID, prize,
			entities.TransactionTypeWinnings,
			fmt.Sprintf("Lottery winnings - %d matching numbers", matches)); err != nil {
			return nil, fmt.Errorf("failed to pay winnings for ticket %d: %w", ticket.ID, err)
		}
	}

	return &interfaces.TicketSettlement{
		TicketID:      ticket.ID,
		UserID:        ticket.UserID,
		Matches:       matches,
		WinningAmount: prize,
		IsWinner:      isWinner,
	}, nil
}
