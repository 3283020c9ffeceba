package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_RejectsBrokenChains(t *testing.T) {
	tests := []struct {
		name    string
		plan    Plan
		wantErr string
	}{
		{
			name:    "empty plan",
			plan:    Plan{},
			wantErr: "no stages",
		},
		{
			name: "forward reference",
			plan: Plan{Stages: []Stage{
				{Kind: StagePassThrough, Inputs: []string{"missing"}, Output: FinalOutput},
			}},
			wantErr: "unknown input",
		},
		{
			name: "duplicate output label",
			plan: Plan{Stages: []Stage{
				{Kind: StageForegroundFit, Inputs: []string{PrimaryInput}, Output: "base"},
				{Kind: StageForegroundFit, Inputs: []string{PrimaryInput}, Output: "base"},
			}},
			wantErr: "reuses output label",
		},
		{
			name: "wrong final label",
			plan: Plan{Stages: []Stage{
				{Kind: StageForegroundFit, Inputs: []string{PrimaryInput}, Output: "base"},
			}},
			wantErr: `ends with label "base"`,
		},
		{
			name: "overlay scale without image",
			plan: Plan{Stages: []Stage{
				{Kind: StageOverlayScale, Output: FinalOutput},
			}},
			wantErr: "without image path",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plan.Validate()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_AcceptsChain(t *testing.T) {
	p := Plan{Stages: []Stage{
		{Kind: StageBackgroundFill, Inputs: []string{PrimaryInput}, Output: "bg"},
		{Kind: StageForegroundFit, Inputs: []string{PrimaryInput}, Output: "fg"},
		{Kind: StageOverlayComposite, Inputs: []string{"bg", "fg"}, Output: "base"},
		{Kind: StageOverlayScale, ImagePath: "/a.png", Output: "logo_scaled"},
		{Kind: StageOverlayComposite, Inputs: []string{"base", "logo_scaled"}, Output: "with_logo"},
		{Kind: StageCaptionBurn, Inputs: []string{"with_logo"}, Output: FinalOutput, CaptionPath: "/c.ass"},
	}}
	assert.NoError(t, p.Validate())
}
