package application

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"
)

// SettleDraw completes a draw with the given winning numbers and settles
// every ticket. The status transition commits first in its own transaction;
// each ticket then settles in a transaction of its own, so one failing payout
// cannot roll back the others. Failures end up in the report for manual
// reconciliation instead of being retried.
func (a *App) SettleDraw(ctx context.Context, drawID int64, winningNumbers []int32) (*interfaces.SettlementReport, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	draw, tickets, err := a.lotteryService(uow).CompleteDraw(ctx, drawID, winningNumbers)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit draw completion: %w", err)
	}

	report := &interfaces.SettlementReport{
		DrawID:         draw.ID,
		WinningNumbers: draw.WinningNumbers,
		JackpotAmount:  draw.JackpotAmount,
	}

	for _, ticket := range tickets {
		settlement, err := a.settleOneTicket(ctx, draw, ticket)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{
				"drawID":   draw.ID,
				"ticketID": ticket.ID,
				"userID":   ticket.UserID,
			}).Error("Failed to settle ticket")
			report.Failures = append(report.Failures, interfaces.TicketFailure{
				TicketID: ticket.ID,
				UserID:   ticket.UserID,
				Reason:   err.Error(),
			})
			continue
		}

		report.TicketsProcessed++
		if settlement.IsWinner {
			report.WinnersPaid++
			report.TotalPayout += settlement.WinningAmount
		}
	}

	if err := a.publisher.Publish(events.DrawSettledEvent{
		DrawID:         draw.ID,
		WinningNumbers: draw.WinningNumbers,
		WinnersPaid:    report.WinnersPaid,
		TotalPayout:    report.TotalPayout,
	}); err != nil {
		log.WithError(err).WithField("drawID", draw.ID).Error("Failed to publish draw settled event")
	}

	log.WithFields(log.Fields{
		"drawID":           draw.ID,
		"ticketsProcessed": report.TicketsProcessed,
		"winnersPaid":      report.WinnersPaid,
		"totalPayout":      report.TotalPayout,
		"failures":         len(report.Failures),
	}).Info("Draw settled")

	return report, nil
}

// settleOneTicket settles a single ticket in its own transaction. The result
// write and the prize payout commit or roll back together.
func (a *App) settleOneTicket(ctx context.Context, draw *entities.Draw, ticket *entities.Ticket) (*interfaces.TicketSettlement, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	settlement, err := a.lotteryService(uow).SettleTicket(ctx, draw, ticket)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ticket settlement: %w", err)
	}
	return settlement, nil
}

// SettleDueDraws finds scheduled draws whose time has passed, generates
// winning numbers for each and settles them. Used by the draw worker.
func (a *App) SettleDueDraws(ctx context.Context) ([]*interfaces.SettlementReport, error) {
	uow := a.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	due, err := uow.DrawRepository().ListDueScheduled(ctx, time.Now().UTC())
	if err != nil {
		uow.Rollback()
		return nil, fmt.Errorf("failed to list due draws: %w", err)
	}
	uow.Rollback()

	if len(due) == 0 {
		return nil, nil
	}

	var reports []*interfaces.SettlementReport
	for _, draw := range due {
		numbers, err := draw.GenerateWinningNumbers()
		if err != nil {
			log.WithError(err).WithField("drawID", draw.ID).Error("Failed to generate winning numbers")
			continue
		}

		report, err := a.SettleDraw(ctx, draw.ID, numbers)
		if err != nil {
			log.WithError(err).WithField("drawID", draw.ID).Error("Failed to settle due draw")
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}
