package recommender

import (
	"reflect"
	"testing"

	"lasko/fitness-api/internal/domain"
)

func TestBuildCandidateFilter(t *testing.T) {
	prefs := domain.UserPreferences{
		Equipment:           domain.EquipmentHomeBasic,
		TrainingDaysPerWeek: 4,
	}

	f := BuildCandidateFilter(prefs)

	wantEq := []domain.Equipment{
		domain.EquipmentBodyweight,
		domain.EquipmentMinimal,
		domain.EquipmentHomeBasic,
	}
	if !reflect.DeepEqual(f.AllowedEquipment, wantEq) {
		t.Errorf("AllowedEquipment = %v, want %v", f.AllowedEquipment, wantEq)
	}
	if f.MinDays != 3 || f.MaxDays != 5 {
		t.Errorf("day band = [%d, %d], want [3, 5]", f.MinDays, f.MaxDays)
	}
}

func TestBuildCandidateFilterUnknownEquipment(t *testing.T) {
	f := BuildCandidateFilter(domain.UserPreferences{
		Equipment:           domain.EquipmentUnknown,
		TrainingDaysPerWeek: 3,
	})
	if f.AllowedEquipment != nil {
		t.Errorf("AllowedEquipment = %v, want nil (no equipment constraint)", f.AllowedEquipment)
	}
}

func TestEligible(t *testing.T) {
	f := CandidateFilter{
		AllowedEquipment: []domain.Equipment{domain.EquipmentBodyweight, domain.EquipmentMinimal},
		MinDays:          2,
		MaxDays:          4,
	}

	tests := []struct {
		name string
		plan domain.Plan
		want bool
	}{
		{
			name: "within band and tier",
			plan: domain.Plan{TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentMinimal},
			want: true,
		},
		{
			name: "too many days",
			plan: domain.Plan{TrainingDaysPerWeek: 5, EquipmentRequired: domain.EquipmentMinimal},
			want: false,
		},
		{
			name: "too few days",
			plan: domain.Plan{TrainingDaysPerWeek: 1, EquipmentRequired: domain.EquipmentBodyweight},
			want: false,
		},
		{
			name: "requires more equipment than allowed",
			plan: domain.Plan{TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentGym},
			want: false,
		},
		{
			name: "unknown plan tier is excluded",
			plan: domain.Plan{TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentUnknown},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Eligible(&tt.plan); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEligibleNoEquipmentConstraint(t *testing.T) {
	f := CandidateFilter{MinDays: 2, MaxDays: 4}
	plan := domain.Plan{TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentGym}
	if !f.Eligible(&plan) {
		t.Error("plan within day band should be eligible when equipment is unconstrained")
	}
}

func TestFilterCandidatesNeverNil(t *testing.T) {
	f := CandidateFilter{MinDays: 2, MaxDays: 4}
	got := FilterCandidates(nil, f)
	if got == nil {
		t.Fatal("FilterCandidates(nil) = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("FilterCandidates(nil) = %v, want empty", got)
	}
}

func TestFilterCandidates(t *testing.T) {
	f := CandidateFilter{
		AllowedEquipment: []domain.Equipment{domain.EquipmentBodyweight},
		MinDays:          2,
		MaxDays:          4,
	}
	plans := []domain.Plan{
		{Name: "keep", TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentBodyweight},
		{Name: "gym", TrainingDaysPerWeek: 3, EquipmentRequired: domain.EquipmentGym},
		{Name: "busy", TrainingDaysPerWeek: 6, EquipmentRequired: domain.EquipmentBodyweight},
	}

	got := FilterCandidates(plans, f)
	if len(got) != 1 || got[0].Name != "keep" {
		t.Errorf("FilterCandidates() = %v, want only %q", got, "keep")
	}
}
