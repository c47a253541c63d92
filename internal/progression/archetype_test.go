package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quailworks/quail-api/internal/errors"
	"github.com/quailworks/quail-api/internal/progression"
)

func testTree() *progression.TalentTree {
	return progression.NewTalentTree("FORAGER", map[string]progression.Talent{
		"keen_eye": {
			ID: "keen_eye", Name: "Keen Eye", Type: progression.TalentForaging,
			Magnitude: 0.1, CostInPoints: 1,
		},
		"seed_sense": {
			ID: "seed_sense", Name: "Seed Sense", Type: progression.TalentForaging,
			Magnitude: 0.25, CostInPoints: 2,
			Requirements: []progression.TalentRequirement{
				{Kind: progression.TalentReqPrerequisiteTalent, TalentID: "keen_eye"},
				{Kind: progression.TalentReqLevel, Level: 3},
			},
		},
		"hoard_master": {
			ID: "hoard_master", Name: "Hoard Master", Type: progression.TalentHoarding,
			Magnitude: 0.5, CostInPoints: 3,
			Requirements: []progression.TalentRequirement{
				{Kind: progression.TalentReqTotalTalentsUnlocked, Count: 2},
			},
		},
	})
}

func TestXPForLevel(t *testing.T) {
	assert.Equal(t, int64(200), progression.XPForLevel(1))
	assert.Equal(t, int64(300), progression.XPForLevel(2))
	assert.Equal(t, int64(450), progression.XPForLevel(3))
	assert.Equal(t, int64(675), progression.XPForLevel(4))
}

func TestSelectArchetype_OneTime(t *testing.T) {
	p := progression.NewArchetypeProgress()

	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)
	assert.Equal(t, progression.ArchetypeForager, p.SelectedArchetype)

	_, err = p.SelectArchetype(progression.ArchetypeSentinel, testTree())
	require.Error(t, err)
	assert.True(t, errors.IsFailedPrecondition(err))
}

func TestGainXP_OverflowCarry(t *testing.T) {
	p := progression.NewArchetypeProgress()
	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)

	// 600 XP: 200 to reach L2, 300 to reach L3, 100 carried
	p, levels, err := p.GainXP(600)
	require.NoError(t, err)
	assert.Equal(t, 2, levels)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, int64(100), p.XP)
	assert.Equal(t, 2, p.AvailableTalentPoints)
	assert.Equal(t, 2, p.TotalTalentPointsEarned)
}

func TestGainXP_NoArchetypeIsNoop(t *testing.T) {
	p := progression.NewArchetypeProgress()
	next, levels, err := p.GainXP(1000)
	require.NoError(t, err)
	assert.Equal(t, 0, levels)
	assert.Equal(t, p, next)
}

func TestGainXP_NegativeRejected(t *testing.T) {
	p := progression.NewArchetypeProgress()
	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)

	_, _, err = p.GainXP(-1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestGainXP_LevelCap(t *testing.T) {
	p := progression.NewArchetypeProgress()
	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)

	p, _, err = p.GainXP(10_000_000)
	require.NoError(t, err)
	assert.Equal(t, progression.MaxArchetypeLevel, p.Level)
	assert.Equal(t, 9, p.TotalTalentPointsEarned)

	// XP still accumulates past the cap but grants nothing
	before := p.XP
	p, levels, err := p.GainXP(500)
	require.NoError(t, err)
	assert.Equal(t, 0, levels)
	assert.Equal(t, progression.MaxArchetypeLevel, p.Level)
	assert.Equal(t, before+500, p.XP)
}

func TestUnlockTalent(t *testing.T) {
	p := progression.NewArchetypeProgress()
	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)
	p, _, err = p.GainXP(2000) // enough for several levels and points
	require.NoError(t, err)
	require.GreaterOrEqual(t, p.Level, 3)

	t.Run("unknown talent", func(t *testing.T) {
		_, code := p.UnlockTalent("nope")
		assert.Equal(t, progression.UnlockUnknownTalent, code)
	})

	t.Run("requirements gate unlock", func(t *testing.T) {
		_, code := p.UnlockTalent("seed_sense")
		assert.Equal(t, progression.UnlockRequirementsNotMet, code)
	})

	t.Run("chain of unlocks spends points", func(t *testing.T) {
		points := p.AvailableTalentPoints

		p2, code := p.UnlockTalent("keen_eye")
		require.Equal(t, progression.UnlockOK, code)
		assert.Equal(t, points-1, p2.AvailableTalentPoints)

		p3, code := p2.UnlockTalent("seed_sense")
		require.Equal(t, progression.UnlockOK, code)

		p4, code := p3.UnlockTalent("hoard_master")
		require.Equal(t, progression.UnlockOK, code)

		assert.InDelta(t, 0.35, p4.TotalBonus(progression.TalentForaging), 1e-9)
		assert.InDelta(t, 0.5, p4.TotalBonus(progression.TalentHoarding), 1e-9)

		bonuses := p4.ActiveBonuses()
		assert.Len(t, bonuses, 2)
	})

	t.Run("double unlock rejected", func(t *testing.T) {
		p2, code := p.UnlockTalent("keen_eye")
		require.Equal(t, progression.UnlockOK, code)
		_, code = p2.UnlockTalent("keen_eye")
		assert.Equal(t, progression.UnlockAlreadyUnlocked, code)
	})

	t.Run("no tree", func(t *testing.T) {
		empty := progression.NewArchetypeProgress()
		_, code := empty.UnlockTalent("keen_eye")
		assert.Equal(t, progression.UnlockNoTree, code)
	})
}

func TestUnlockTalent_InsufficientPoints(t *testing.T) {
	p := progression.NewArchetypeProgress()
	p, err := p.SelectArchetype(progression.ArchetypeForager, testTree())
	require.NoError(t, err)
	p, _, err = p.GainXP(200) // level 2, one point
	require.NoError(t, err)
	require.Equal(t, 1, p.AvailableTalentPoints)

	p, code := p.UnlockTalent("keen_eye")
	require.Equal(t, progression.UnlockOK, code)
	require.Equal(t, 0, p.AvailableTalentPoints)

	// hoard_master requirement (2 unlocked) fails before affordability
	_, code = p.UnlockTalent("hoard_master")
	assert.Equal(t, progression.UnlockRequirementsNotMet, code)
}
