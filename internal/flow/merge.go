package flow

import "github.com/tripkit/tripkit/internal/models"

// mergeCollectedData merges newly extracted fields into previously confirmed
// data. An existing value is kept unless the incoming value is non-nil, so a
// confirmed field can be replaced but never cleared.
func mergeCollectedData(existing models.CollectedData, incoming *models.CollectedData) models.CollectedData {
	if incoming == nil {
		return existing
	}
	merged := existing
	if incoming.City != nil {
		merged.City = incoming.City
	}
	if incoming.SpotName != nil {
		merged.SpotName = incoming.SpotName
	}
	if incoming.MainAction != nil {
		merged.MainAction = incoming.MainAction
	}
	if incoming.ConceptID != nil {
		merged.ConceptID = incoming.ConceptID
	}
	if incoming.OutfitStyle != nil {
		merged.OutfitStyle = incoming.OutfitStyle
	}
	if incoming.PosePreference != nil {
		merged.PosePreference = incoming.PosePreference
	}
	if incoming.FilmType != nil {
		merged.FilmType = incoming.FilmType
	}
	if incoming.CameraModel != nil {
		merged.CameraModel = incoming.CameraModel
	}
	return merged
}

// mergeRejectedItems unions newly rejected values into the existing sets,
// dropping duplicates. Categories only ever grow.
func mergeRejectedItems(existing models.RejectedItems, incoming *models.RejectedItems) models.RejectedItems {
	if incoming == nil {
		return existing
	}
	return models.RejectedItems{
		Cities:   unionStrings(existing.Cities, incoming.Cities),
		Spots:    unionStrings(existing.Spots, incoming.Spots),
		Actions:  unionStrings(existing.Actions, incoming.Actions),
		Concepts: unionStrings(existing.Concepts, incoming.Concepts),
		Outfits:  unionStrings(existing.Outfits, incoming.Outfits),
		Poses:    unionStrings(existing.Poses, incoming.Poses),
		Films:    unionStrings(existing.Films, incoming.Films),
		Cameras:  unionStrings(existing.Cameras, incoming.Cameras),
	}
}

// unionStrings appends the items of incoming that existing does not already
// contain, preserving existing order.
func unionStrings(existing, incoming []string) []string {
	if len(incoming) == 0 {
		return existing
	}
	seen := make(map[string]bool, len(existing)+len(incoming))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, item := range existing {
		if !seen[item] {
			seen[item] = true
			merged = append(merged, item)
		}
	}
	for _, item := range incoming {
		if !seen[item] {
			seen[item] = true
			merged = append(merged, item)
		}
	}
	return merged
}

// calculateStepFromData derives the current and next step purely from which
// fields are populated. The generation model's own step values are never
// trusted; this derivation is the single source of truth for progression.
//
// The walk tracks the last filled field by table order, not by recency of
// update, so correcting an earlier field after later ones are filled does not
// move the step backward past the latest filled field.
func calculateStepFromData(collected models.CollectedData) (current, next models.Step, isComplete bool) {
	fieldToStep := []struct {
		value *string
		step  models.Step
	}{
		{collected.City, models.StepCity},
		{collected.SpotName, models.StepSpot},
		{collected.MainAction, models.StepAction},
		{collected.ConceptID, models.StepConcept},
		{collected.OutfitStyle, models.StepOutfit},
		{collected.PosePreference, models.StepPose},
		{collected.FilmType, models.StepFilm},
		{collected.CameraModel, models.StepCamera},
	}

	lastFilled := models.StepGreeting
	for _, entry := range fieldToStep {
		if entry.value != nil {
			lastFilled = entry.step
		}
	}

	next = models.NextStep(lastFilled)
	return lastFilled, next, next == models.StepComplete
}
