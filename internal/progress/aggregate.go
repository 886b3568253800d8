package progress

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// SectionRow is one section output attributed to its owner, an analysis job
// or an avatar depending on which table the row came from.
type SectionRow struct {
	OwnerID uuid.UUID
	Section string
}

// Snapshot is the aggregated completion state for one owner.
type Snapshot struct {
	CompletedSections int      `json:"completedSections"`
	TotalExpected     int      `json:"totalExpected"`
	MissingSections   []string `json:"missingSections,omitempty"`
	IsReady           bool     `json:"isReady"`
}

// NormalizeSection strips whitespace and separator runes and lowercases. The
// pipeline is not consistent about spacing, casing, or underscores in section
// names ("Perfil Psicologico" vs "perfil_psicologico"), so every comparison
// goes through this.
func NormalizeSection(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '_' || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Aggregate computes a Snapshot per owner from raw section rows. Duplicate
// rows for the same section count once, sections outside the manifest are
// ignored, and MissingSections preserves manifest order using the manifest's
// spelling.
func Aggregate(rows []SectionRow, manifest Manifest) map[uuid.UUID]Snapshot {
	expected := make(map[string]struct{}, len(manifest.Sections))
	for _, section := range manifest.Sections {
		expected[NormalizeSection(section)] = struct{}{}
	}

	observed := make(map[uuid.UUID]map[string]struct{})
	for _, row := range rows {
		section := NormalizeSection(row.Section)
		if _, ok := expected[section]; !ok {
			continue
		}
		if observed[row.OwnerID] == nil {
			observed[row.OwnerID] = make(map[string]struct{})
		}
		observed[row.OwnerID][section] = struct{}{}
	}

	snapshots := make(map[uuid.UUID]Snapshot, len(observed))
	for ownerID, sections := range observed {
		snapshots[ownerID] = snapshotFor(sections, manifest)
	}
	return snapshots
}

// SnapshotFor computes the Snapshot of a single owner whose observed rows are
// already isolated, e.g. when a page polls one job.
func SnapshotFor(rows []SectionRow, manifest Manifest) Snapshot {
	expected := make(map[string]struct{}, len(manifest.Sections))
	for _, section := range manifest.Sections {
		expected[NormalizeSection(section)] = struct{}{}
	}
	sections := make(map[string]struct{})
	for _, row := range rows {
		section := NormalizeSection(row.Section)
		if _, ok := expected[section]; ok {
			sections[section] = struct{}{}
		}
	}
	return snapshotFor(sections, manifest)
}

func snapshotFor(sections map[string]struct{}, manifest Manifest) Snapshot {
	snapshot := Snapshot{
		CompletedSections: len(sections),
		TotalExpected:     len(manifest.Sections),
	}
	for _, section := range manifest.Sections {
		if _, ok := sections[NormalizeSection(section)]; !ok {
			snapshot.MissingSections = append(snapshot.MissingSections, section)
		}
	}
	snapshot.IsReady = len(snapshot.MissingSections) == 0
	return snapshot
}

// Terminal job statuses as reported by the pipeline.
func isTerminalStatus(status string) bool {
	switch status {
	case "done", "succeeded", "failed", "canceled":
		return true
	}
	return false
}

// DeriveStatus reconciles the pipeline's job status with the observed
// sections. The pipeline sometimes finishes writing every section before it
// flips the job row, so a fully observed manifest reports succeeded even
// while the status row still says running.
func DeriveStatus(status string, snapshot Snapshot) string {
	if snapshot.IsReady && !isTerminalStatus(status) {
		return "succeeded"
	}
	return status
}
