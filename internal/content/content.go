// Package content holds the built-in tip and fact catalogs. Entries are
// selected by index, so reordering or removing them changes what users
// see on a given day; append new entries at the end.
package content

import "github.com/ecolife/ecolife-cli/internal/models"

var tips = []models.Tip{
	{Title: "Carry a reusable bottle", Body: "Refill at home or work instead of buying bottled water."},
	{Title: "Shorter showers", Body: "Cutting two minutes saves around 20 litres of water each time."},
	{Title: "Unplug idle chargers", Body: "Chargers draw power even when nothing is connected."},
	{Title: "Walk the short trips", Body: "Trips under 2 km are often quicker on foot or by bike than by car."},
	{Title: "Plan a meatless meal", Body: "One plant-based dinner a week noticeably lowers your food footprint."},
	{Title: "Wash clothes cold", Body: "Most of a washing machine's energy goes into heating water."},
	{Title: "Bring your own bag", Body: "Keep a folded tote in your backpack or car for unplanned shopping."},
	{Title: "Fix before replacing", Body: "A loose button or a cracked case is usually a cheap repair."},
	{Title: "Line-dry when you can", Body: "Dryers are among the most power-hungry home appliances."},
	{Title: "Freeze leftovers", Body: "Food you freeze today is food you do not throw out next week."},
	{Title: "Turn the thermostat one degree", Body: "One degree lower in winter saves a few percent on heating."},
	{Title: "Say no to receipts", Body: "Thermal paper receipts are not recyclable; ask for a digital copy."},
	{Title: "Buy loose produce", Body: "Skip the pre-packed fruit and vegetables when you have the choice."},
	{Title: "Switch to LED", Body: "LED bulbs use roughly a quarter of the energy of incandescents."},
	{Title: "Compost scraps", Body: "Food waste in landfill produces methane; compost turns it into soil."},
}

var facts = []models.Fact{
	{Text: "Aluminium cans can be recycled indefinitely without losing quality."},
	{Text: "Recycling one aluminium can saves enough energy to run a TV for about three hours."},
	{Text: "Glass can be recycled endlessly, but broken drinking glasses and window panes usually cannot go in the bottle bank."},
	{Text: "Greasy pizza boxes often contaminate paper recycling; tear off the clean lid instead."},
	{Text: "Paper fibres can be recycled around five to seven times before they become too short."},
	{Text: "Plastic bags jam sorting machinery and should go to store drop-off points, not the curbside bin."},
	{Text: "Batteries in household bins are a leading cause of fires at waste facilities."},
	{Text: "Making a can from recycled aluminium uses about 95% less energy than from raw ore."},
	{Text: "Rinsing containers matters: food residue can spoil a whole bale of recyclables."},
	{Text: "Most coffee cups are lined with plastic and cannot be recycled with ordinary paper."},
	{Text: "Steel is the most recycled material in the world by weight."},
	{Text: "Old electronics contain gold, silver and copper that e-waste recyclers recover."},
}

// Tips returns the daily tip catalog.
func Tips() []models.Tip { return tips }

// Facts returns the recycling facts catalog.
func Facts() []models.Fact { return facts }

// Tip returns the tip at index i, wrapping out-of-range indices.
func Tip(i int) models.Tip {
	return tips[wrap(i, len(tips))]
}

// Fact returns the fact at index i, wrapping out-of-range indices.
func Fact(i int) models.Fact {
	return facts[wrap(i, len(facts))]
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
