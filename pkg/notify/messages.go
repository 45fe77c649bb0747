package notify

import (
	"fmt"

	"github.com/lucasmendes/plantao/pkg/core/model"
)

// ShiftSummary is the human-readable description of a shift used in
// notification bodies, e.g. "Sábado 2025-03-01 (13:00 - 17:00)".
func ShiftSummary(slot model.SlotType, date string) string {
	day := "Sábado"
	if slot.Weekday().String() == "Sunday" {
		day = "Domingo"
	}
	start, end := slot.Times()
	return fmt.Sprintf("%s %s (%s - %s)", day, date, start, end)
}

// SwapRequested builds the notification sent to the target person when a
// swap is proposed.
func SwapRequested(swapID, targetID, requesterName, requesterShift, targetShift, message string) model.Notification {
	body := fmt.Sprintf(
		"%s deseja trocar o plantão %s pelo seu plantão %s.",
		requesterName, requesterShift, targetShift,
	)
	if message != "" {
		body += fmt.Sprintf(" Mensagem: %s", message)
	}
	return model.Notification{
		RecipientID: targetID,
		Kind:        model.KindSwapRequested,
		Title:       "Nova solicitação de troca de plantão",
		Body:        body,
		SwapID:      swapID,
	}
}

// SwapAccepted builds the notification sent to the requester on acceptance
func SwapAccepted(swapID, requesterID, targetName string) model.Notification {
	return model.Notification{
		RecipientID: requesterID,
		Kind:        model.KindSwapAccepted,
		Title:       "Troca de plantão aceita",
		Body:        fmt.Sprintf("%s aceitou a sua solicitação de troca. Os plantões foram atualizados.", targetName),
		SwapID:      swapID,
	}
}

// SwapRejected builds the notification sent to the requester on rejection
func SwapRejected(swapID, requesterID, targetName string) model.Notification {
	return model.Notification{
		RecipientID: requesterID,
		Kind:        model.KindSwapRejected,
		Title:       "Troca de plantão recusada",
		Body:        fmt.Sprintf("%s recusou a sua solicitação de troca.", targetName),
		SwapID:      swapID,
	}
}

// SwapCancelled builds the notification sent to the target on cancellation
func SwapCancelled(swapID, targetID, requesterName string) model.Notification {
	return model.Notification{
		RecipientID: targetID,
		Kind:        model.KindSwapCancelled,
		Title:       "Troca de plantão cancelada",
		Body:        fmt.Sprintf("%s cancelou a solicitação de troca.", requesterName),
		SwapID:      swapID,
	}
}
