package normalize

import "testing"

func TestNormalizeNameFoldsPunctuationAndCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Witcher® 3: Wild Hunt", "the witcher 3 wild hunt"},
		{"Tom Clancy's Rainbow Six® Siege", "tom clancy s rainbow six siege"},
		{"Ori & the Blind Forest", "ori and the blind forest"},
		{"Pokémon", "pokemon"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	inputs := []string{
		"The Witcher 3: Wild Hunt",
		"Ori & the Blind Forest",
		"HADES-II",
		"S.T.A.L.K.E.R. 2: Heart of Chornobyl",
	}
	for _, in := range inputs {
		once := NormalizeName(in)
		if twice := NormalizeName(once); twice != once {
			t.Fatalf("NormalizeName not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestStripFileExtensions(t *testing.T) {
	if got := StripFileExtensions("Game Setup.exe.rar"); got != "Game Setup" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := StripFileExtensions("No Extension Here"); got != "No Extension Here" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestStripVersionStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hades v1.35966", "Hades"},
		{"Factorio Build 12345", "Factorio"},
		{"Game 2023.10.05 Update 3", "Game"},
		{"Big Rip 45.3 GB", "Big Rip"},
		{"Bundle 12 DLCs", "Bundle"},
	}
	for _, tc := range cases {
		if got := StripVersionStrings(tc.in); got != tc.want {
			t.Fatalf("StripVersionStrings(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStripEditionSuffix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Witcher 3: Wild Hunt - Complete Edition", "The Witcher 3: Wild Hunt"},
		{"Skyrim Special Edition", "Skyrim"},
		{"Borderlands 3 Ultimate Edition + 57 DLCs", "Borderlands 3"},
		{"Control + Bonus Soundtrack", "Control"},
		{"Fallout 4 Game of the Year Edition", "Fallout 4"},
		{"No Edition At All", "No Edition At All"},
	}
	for _, tc := range cases {
		if got := StripEditionSuffix(tc.in); got != tc.want {
			t.Fatalf("StripEditionSuffix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExtractSequelInfo(t *testing.T) {
	cases := []struct {
		in       string
		wantBase string
		wantNum  int
	}{
		{"Hades II", "hades", 2},
		{"Hades", "hades", 0},
		{"Far Cry 4", "far cry", 4},
		{"The Witcher 3 Wild Hunt", "the witcher 3 wild hunt", 0},
		{"Final Fantasy VII", "final fantasy", 7},
		{"Left 4 Dead 2", "left 4 dead", 2},
		{"Doom Eternal CODEX", "doom eternal", 0},
		{"Elden Ring v1.10 FitGirl Repack", "elden ring", 0},
		{"Grand Theft Auto V", "grand theft auto", 5},
	}
	for _, tc := range cases {
		got := ExtractSequelInfo(tc.in)
		if got.BaseName != tc.wantBase || got.Number != tc.wantNum {
			t.Fatalf("ExtractSequelInfo(%q) = {%q %d}, want {%q %d}",
				tc.in, got.BaseName, got.Number, tc.wantBase, tc.wantNum)
		}
	}
}

func TestSameGameVariantAndDifferentSequel(t *testing.T) {
	if !IsDifferentSequel("Hades", "Hades II") {
		t.Fatal("Hades II should be a different sequel of Hades")
	}
	if IsSameGameVariant("Hades", "Hades II") {
		t.Fatal("Hades II should not be a variant of Hades")
	}
	if !IsSameGameVariant("Hades", "Hades – v1.35966") {
		t.Fatal("versioned Hades release should be a variant of Hades")
	}
	if IsDifferentSequel("Far Cry 4", "Far Cry 4 Escape From Durgesh Prison") {
		t.Fatal("literal prefix of the reference title must not count as a different sequel")
	}
	if !IsDifferentSequel("The Witcher 3: Wild Hunt", "The Witcher 2") {
		t.Fatal("Witcher 2 should be a different sequel of Witcher 3")
	}
	if !IsSameGameVariant("The Witcher 3: Wild Hunt", "The Witcher 3 Wild Hunt Complete Edition") {
		t.Fatal("complete edition should be a variant of the same game")
	}
}

func TestSameGameVariantRejectsDivergentPrefix(t *testing.T) {
	if IsSameGameVariant("Stray", "Stray Souls Definitive Something Else Entirely") {
		t.Fatal("single-word prefix with many extra words should not match")
	}
	if IsSameGameVariant("Stray", "Stray of the Abyss") {
		t.Fatal("remainder opening with a preposition should not match")
	}
}

func TestAllWordsPresentIsSafe(t *testing.T) {
	if !AllWordsPresentIsSafe("The Witcher 3 Wild Hunt", "anything at all") {
		t.Fatal("long reference names are always safe")
	}
	if AllWordsPresentIsSafe("Stray", "Stray Souls Repack Horror Game") {
		t.Fatal("single-word reference with extra meaningful words is unsafe")
	}
	if !AllWordsPresentIsSafe("Stray", "Stray v1.4 GOG") {
		t.Fatal("single-word reference with only decoration is safe")
	}
}

func TestMalwarePattern(t *testing.T) {
	if !IsMalwarePattern("Any Game", 5_000_000) {
		t.Fatal("sub-10MB release should flag regardless of title")
	}
	if !IsMalwarePattern("Game Setup.exe.rar", 60_000_000) {
		t.Fatal("small exe-in-archive should flag")
	}
	if IsMalwarePattern("Game Setup.exe.rar", 200_000_000) {
		t.Fatal("large exe-in-archive should not flag")
	}
	if IsMalwarePattern("Honest Game", 0) {
		t.Fatal("unknown size should not flag")
	}
	if IsMalwarePattern("Honest Game", 50_000_000_000) {
		t.Fatal("full-size release should not flag")
	}
}

func TestDlcOnlyRelease(t *testing.T) {
	if !IsDlcOnlyRelease("Far Cry 4", "Far Cry 4 Escape From Durgesh Prison Dlc") {
		t.Fatal("named DLC release should flag as DLC-only")
	}
	if IsDlcOnlyRelease("Far Cry 4", "Far Cry 4 Complete Edition Dlc") {
		t.Fatal("bundle language suppresses DLC-only")
	}
	if IsDlcOnlyRelease("Far Cry 4", "Far Cry 4 DLC") {
		t.Fatal("bare Name DLC shorthand is not DLC-only")
	}
	if IsDlcOnlyRelease("Far Cry 4", "Far Cry 4") {
		t.Fatal("no DLC token means no flag")
	}
}

func TestUpdateOnlyRelease(t *testing.T) {
	if !IsUpdateOnlyRelease("Cyberpunk 2077 Update v2.01") {
		t.Fatal("update release should flag")
	}
	if IsUpdateOnlyRelease("Cyberpunk 2077 Repack incl Update v2.01") {
		t.Fatal("repack mentioning an update is a full release")
	}
	if IsUpdateOnlyRelease("Cyberpunk 2077 Updated Graphics Showcase") {
		t.Fatal("'updated' is not an update release")
	}
}

func TestSceneAndRepackDetection(t *testing.T) {
	if !IsSceneRelease("Doom.Eternal-CODEX") {
		t.Fatal("scene tag suffix should flag")
	}
	if !IsSceneRelease("Hades SKIDROW") {
		t.Fatal("scene group token should flag")
	}
	if IsSceneRelease("Hades") {
		t.Fatal("clean title should not flag")
	}
	if !IsRepack("Elden Ring FitGirl Repack") {
		t.Fatal("repacker credit should flag")
	}
	if IsRepack("Elden Ring") {
		t.Fatal("clean title should not flag repack")
	}
}

func TestNonGameClassifiers(t *testing.T) {
	if !IsNonGameContent("Hades Original Soundtrack") {
		t.Fatal("soundtrack should flag as non-game")
	}
	if !IsNonGameMedia("Stray 2022 1080p WEBRip x264") {
		t.Fatal("video release should flag as non-game media")
	}
	if IsNonGameContent("Hades") {
		t.Fatal("plain title should not flag")
	}
}

func TestYearsInTitle(t *testing.T) {
	years := YearsInTitle("Hitman 2016 Remaster 2019")
	if len(years) != 2 || years[0] != 2016 || years[1] != 2019 {
		t.Fatalf("unexpected years %v", years)
	}
	if got := YearsInTitle("No Years Here 123"); len(got) != 0 {
		t.Fatalf("unexpected years %v", got)
	}
}
