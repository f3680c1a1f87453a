package convert

import (
	"github.com/claude/hkreporter/internal/healthkit"
	"github.com/claude/hkreporter/internal/hkerror"
	"github.com/claude/hkreporter/internal/models"
)

// HarmonizeCharacteristics converts the characteristic profile.
func HarmonizeCharacteristics(c *healthkit.Characteristics) (*models.Characteristics, error) {
	if c == nil {
		return nil, hkerror.InvalidValuef("characteristics are absent")
	}
	h, err := resolveCharacteristics(int(c.BiologicalSex), int(c.BloodType), int(c.SkinType), int(c.WheelchairUse))
	if err != nil {
		return nil, err
	}
	if c.DateOfBirth != nil {
		day, err := calendarDay(*c.DateOfBirth, "dateOfBirth", "characteristics")
		if err != nil {
			return nil, err
		}
		s := models.FormatDate(day)
		h.Birthday = &s
	}
	return &models.Characteristics{Identifier: healthkit.CharacteristicType.Identifier, Harmonized: h}, nil
}

// DehydrateCharacteristics rebuilds the native characteristic profile.
func DehydrateCharacteristics(r *models.Characteristics) (*healthkit.Characteristics, error) {
	if err := expectIdentifier(r.Identifier, healthkit.CharacteristicType); err != nil {
		return nil, err
	}
	h := r.Harmonized
	if _, err := resolveCharacteristics(h.BiologicalSex, h.BloodType, h.SkinType, h.WheelchairUse); err != nil {
		return nil, err
	}
	out := &healthkit.Characteristics{
		BiologicalSex: healthkit.BiologicalSex(h.BiologicalSex),
		BloodType:     healthkit.BloodType(h.BloodType),
		SkinType:      healthkit.FitzpatrickSkinType(h.SkinType),
		WheelchairUse: healthkit.WheelchairUse(h.WheelchairUse),
	}
	if h.Birthday != nil {
		day, err := models.ParseDate(*h.Birthday)
		if err != nil {
			return nil, err
		}
		dc := healthkit.DateComponentsOf(day)
		out.DateOfBirth = &dc
	}
	return out, nil
}

func resolveCharacteristics(sex, blood, skin, wheelchair int) (models.CharacteristicsHarmonized, error) {
	var h models.CharacteristicsHarmonized
	s, err := healthkit.BiologicalSexFromCode(sex)
	if err != nil {
		return h, err
	}
	b, err := healthkit.BloodTypeFromCode(blood)
	if err != nil {
		return h, err
	}
	f, err := healthkit.FitzpatrickSkinTypeFromCode(skin)
	if err != nil {
		return h, err
	}
	w, err := healthkit.WheelchairUseFromCode(wheelchair)
	if err != nil {
		return h, err
	}
	h.BiologicalSex, h.BloodType, h.SkinType, h.WheelchairUse = int(s), int(b), int(f), int(w)
	return h, nil
}
