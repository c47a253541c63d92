package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quailworks/quail-api/internal/progression"
)

func TestSkill_GainXP(t *testing.T) {
	tree := progression.NewSkillTree()

	// 100 to reach L2, 200 to reach L3, 50 carried
	tree, levels, err := tree.GainSkillXP("foraging", 350)
	require.NoError(t, err)
	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, tree.SkillLevel("foraging"))
	assert.Equal(t, int64(50), tree.Skills["foraging"].XP)
}

func TestSkill_LevelCap(t *testing.T) {
	tree := progression.NewSkillTree()
	tree, _, err := tree.GainSkillXP("stealth", 1_000_000)
	require.NoError(t, err)
	assert.Equal(t, progression.MaxSkillLevel, tree.SkillLevel("stealth"))
}

func TestSkill_NegativeXP(t *testing.T) {
	tree := progression.NewSkillTree()
	_, _, err := tree.GainSkillXP("stealth", -10)
	require.Error(t, err)
}

func TestSkill_UnlockAbility(t *testing.T) {
	skill := progression.NewSkill("foraging")
	next := skill.UnlockAbility("berry_lore")

	assert.True(t, next.Abilities["berry_lore"])
	assert.False(t, skill.Abilities["berry_lore"], "original snapshot untouched")
}

func TestSkillRequirements(t *testing.T) {
	tree := progression.NewSkillTree()
	tree, _, err := tree.GainSkillXP("foraging", 300) // level 3
	require.NoError(t, err)
	tree, _, err = tree.GainSkillXP("stealth", 100) // level 2
	require.NoError(t, err)

	tests := []struct {
		name string
		req  progression.SkillRequirement
		want bool
	}{
		{
			name: "level met",
			req:  progression.SkillRequirement{Kind: progression.SkillReqLevel, SkillID: "foraging", Level: 3},
			want: true,
		},
		{
			name: "level unmet",
			req:  progression.SkillRequirement{Kind: progression.SkillReqLevel, SkillID: "stealth", Level: 5},
			want: false,
		},
		{
			name: "untrained skill",
			req:  progression.SkillRequirement{Kind: progression.SkillReqLevel, SkillID: "charm", Level: 1},
			want: false,
		},
		{
			name: "total points",
			req:  progression.SkillRequirement{Kind: progression.SkillReqTotalPoints, Points: 5},
			want: true,
		},
		{
			name: "all",
			req: progression.SkillRequirement{Kind: progression.SkillReqAll, Requirements: []progression.SkillRequirement{
				{Kind: progression.SkillReqLevel, SkillID: "foraging", Level: 2},
				{Kind: progression.SkillReqLevel, SkillID: "stealth", Level: 2},
			}},
			want: true,
		},
		{
			name: "all short-circuits on failure",
			req: progression.SkillRequirement{Kind: progression.SkillReqAll, Requirements: []progression.SkillRequirement{
				{Kind: progression.SkillReqLevel, SkillID: "foraging", Level: 2},
				{Kind: progression.SkillReqLevel, SkillID: "charm", Level: 1},
			}},
			want: false,
		},
		{
			name: "any",
			req: progression.SkillRequirement{Kind: progression.SkillReqAny, Requirements: []progression.SkillRequirement{
				{Kind: progression.SkillReqLevel, SkillID: "charm", Level: 1},
				{Kind: progression.SkillReqLevel, SkillID: "stealth", Level: 2},
			}},
			want: true,
		},
		{
			name: "unknown kind is false",
			req:  progression.SkillRequirement{Kind: "WEIRD"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tree.Satisfied(tt.req))
		})
	}
}
