package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"estimate_backend/internal/estimates/ports"
)

// generationRules is the fixed rule set for estimate generation. The margin
// is applied by the pricing engine afterwards, so the model works purely on
// cost-basis prices.
const generationRules = `You are an experienced construction cost estimator. You produce itemized cost estimates for renovation and construction work.

## Rules
1. Generate line items ONLY for work explicitly described by the user. Never add adjacent trades, preparatory work, or finishing touches that were not requested.
2. Group items into logical work categories (e.g. Demolition, Plumbing, Electrical, Painting).
3. Every item carries a cost-basis price: the contractor's cost excluding any profit margin. Do NOT apply a margin; that happens downstream.
4. For every item: lineSubtotal = quantity * costPrice.
5. Quantities and prices are plain numbers, never strings.
6. Use realistic market prices. Prefer the reference prices below when a reference entry matches the described work.

## Output format
Respond with a single JSON object, no surrounding text:
{"items": [{"category": "...", "description": "...", "unit": "...", "quantity": 1, "costPrice": 0.0, "taxRate": 21}]}

taxRate is the applicable VAT percentage for the item (21 standard, 9 reduced where it applies to labor on homes older than two years).`

// modificationRules instructs the model to return a full replacement item
// set rather than a diff. Re-sending the whole list every turn is the
// accepted cost of not having to apply a structural patch against
// possibly-renamed items.
const modificationRules = `You are an experienced construction cost estimator. You revise an existing itemized estimate according to an instruction.

## Rules
1. Return the FULL revised item list, not just the changes.
2. Items not affected by the instruction must be returned completely unchanged, field for field.
3. For additive instructions: append new items with realistic cost-basis pricing.
4. For subtractive instructions: omit the targeted items from the result.
5. For adjustment instructions: modify only the targeted fields of the targeted items.
6. All prices are cost-basis (no margin). lineSubtotal = quantity * costPrice.
7. Quantities and prices are plain numbers, never strings.

## Output format
Respond with a single JSON object, no surrounding text:
{"items": [{"category": "...", "description": "...", "unit": "...", "quantity": 1, "costPrice": 0.0, "taxRate": 21}]}`

// buildGenerationSystemPrompt combines the rule set with the matched
// reference price section, when non-empty.
func buildGenerationSystemPrompt(refs []ports.ReferenceGroup) string {
	if len(refs) == 0 {
		return generationRules
	}

	var sb strings.Builder
	sb.WriteString(generationRules)
	sb.WriteString("\n\n## Reference prices (cost-basis, per unit)\n")
	for _, group := range refs {
		fmt.Fprintf(&sb, "\n### %s\n", group.Category)
		for _, p := range group.Prices {
			fmt.Fprintf(&sb, "- %s: %s — %.2f per %s\n", p.Code, p.Description, p.UnitPrice, p.Unit)
		}
	}
	return sb.String()
}

// photoGroup is the set of photos sharing one zone label, in input order.
type photoGroup struct {
	zone   string
	photos []Photo
}

// Photo is one decoded site photograph.
type Photo struct {
	Data      []byte
	MimeType  string
	ZoneLabel string
}

// buildGenerationParts assembles the user message and, when photos are
// present, one textual header plus the images per zone.
func buildGenerationParts(req GenerateInput) []ports.PromptPart {
	var sb strings.Builder
	sb.WriteString("Create a cost estimate for the following work:\n\n")
	if req.WorkType != "" {
		fmt.Fprintf(&sb, "Work type: %s\n", req.WorkType)
	}
	if req.ClientName != "" {
		fmt.Fprintf(&sb, "Client: %s\n", req.ClientName)
	}
	if req.ProjectName != "" {
		fmt.Fprintf(&sb, "Project: %s\n", req.ProjectName)
	}
	if req.ProjectAddress != "" {
		fmt.Fprintf(&sb, "Address: %s\n", req.ProjectAddress)
	}
	fmt.Fprintf(&sb, "\nDescription:\n%s\n", req.Description)
	sb.WriteString("\nEstimate only the work described above. Do not add items for work that was not requested.")

	parts := []ports.PromptPart{ports.TextPart(sb.String())}

	for _, group := range groupPhotosByZone(req.Photos) {
		header := fmt.Sprintf("Photos of zone: %s", group.zone)
		parts = append(parts, ports.TextPart(header))
		for _, photo := range group.photos {
			if taken := captureTime(photo.Data); taken != "" {
				parts = append(parts, ports.TextPart(fmt.Sprintf("(photo taken %s)", taken)))
			}
			parts = append(parts, ports.ImagePart(photo.MimeType, photo.Data))
		}
	}

	return parts
}

// buildModificationParts serializes the current items next to the
// instruction. The global margin is stripped back to cost basis before
// serialization by the caller.
func buildModificationParts(items []CostItem, instruction string) ([]ports.PromptPart, error) {
	serialized, err := json.MarshalIndent(map[string][]CostItem{"items": items}, "", "  ")
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("Current estimate items:\n\n")
	sb.Write(serialized)
	sb.WriteString("\n\nInstruction:\n")
	sb.WriteString(instruction)
	sb.WriteString("\n\nReturn the full revised item list. Leave items the instruction does not mention unchanged.")

	return []ports.PromptPart{ports.TextPart(sb.String())}, nil
}

// groupPhotosByZone preserves first-seen zone order. Photos without a zone
// label fall into a general group.
func groupPhotosByZone(photos []Photo) []photoGroup {
	var groups []photoGroup
	index := make(map[string]int)
	for _, photo := range photos {
		zone := photo.ZoneLabel
		if zone == "" {
			zone = "general"
		}
		i, ok := index[zone]
		if !ok {
			i = len(groups)
			index[zone] = i
			groups = append(groups, photoGroup{zone: zone})
		}
		groups[i].photos = append(groups[i].photos, photo)
	}
	return groups
}

// captureTime extracts the EXIF capture timestamp from a photo, if present.
// Returns an empty string for photos without usable EXIF data.
func captureTime(data []byte) string {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return ""
	}
	tm, err := x.DateTime()
	if err != nil {
		return ""
	}
	return tm.Format("2006-01-02 15:04")
}
