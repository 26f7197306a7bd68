package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ksyv/Carillon/models"
	"github.com/ksyv/Carillon/planning"
)

func testAggregator(t *testing.T, db *gorm.DB, s *Store) *Aggregator {
	t.Helper()
	return NewAggregator(db, s, planning.NewNoteStore(db))
}

func TestEffectiveCategory(t *testing.T) {
	// Compte "Tous" : le filtre demandé s'applique.
	assert.Equal(t, models.CategoryAll, EffectiveCategory(models.CategoryAll, ""))
	assert.Equal(t, models.CategoryMaternelle, EffectiveCategory(models.CategoryAll, models.CategoryMaternelle))
	// Compte restreint : l'accès l'emporte, quoi que demande l'appelant.
	assert.Equal(t, models.CategoryMaternelle, EffectiveCategory(models.CategoryMaternelle, models.CategoryElementaire))
	assert.Equal(t, models.CategoryMaternelle, EffectiveCategory(models.CategoryMaternelle, ""))
}

func TestSessionSearchFloor(t *testing.T) {
	db := testDB(t)
	s := testStore(t, db)
	agg := testAggregator(t, db, s)
	seedChild(t, db, "DUPONT", "Léa", models.CategoryMaternelle)
	seedChild(t, db, "MARTIN", "Hugo", models.CategoryElementaire)

	for _, q := range []string{"", "d", " d "} {
		view, err := agg.Build(SessionQuery{
			Date: testDate, SessionType: models.SessionMatin,
			Search: q, CallerAccess: models.CategoryAll,
		})
		require.NoError(t, err)
		assert.Empty(t, view.Candidates, "recherche %q", q)
	}
}

func TestSessionCandidates(t *testing.T) {
	db := testDB(t)
	s := testStore(t, db)
	agg := testAggregator(t, db, s)
	dupont := seedChild(t, db, "DUPONT", "Léa", models.CategoryMaternelle)
	durand := seedChild(t, db, "DURAND", "Paul", models.CategoryMaternelle)
	seedChild(t, db, "MARTIN", "Hugo", models.CategoryElementaire)
	inactive := models.Child{LastName: "DUVAL", FirstName: "Zoé", Category: models.CategoryMaternelle, Active: false}
	require.NoError(t, db.Create(&inactive).Error)

	// DUPONT déjà pointée : elle sort des candidats.
	_, err := s.CheckIn(testDate, models.SessionMatin, dupont.ID)
	require.NoError(t, err)

	view, err := agg.Build(SessionQuery{
		Date: testDate, SessionType: models.SessionMatin,
		Search: "du", CallerAccess: models.CategoryAll,
	})
	require.NoError(t, err)
	require.Len(t, view.Candidates, 1)
	assert.Equal(t, durand.ID, view.Candidates[0].ID)

	// Insensible à la casse, et le prénom compte aussi.
	view, err = agg.Build(SessionQuery{
		Date: testDate, SessionType: models.SessionMatin,
		Search: "PAUL", CallerAccess: models.CategoryAll,
	})
	require.NoError(t, err)
	require.Len(t, view.Candidates, 1)
	assert.Equal(t, durand.ID, view.Candidates[0].ID)
}

func TestSessionCategoryForcedByAccess(t *testing.T) {
	db := testDB(t)
	s := testStore(t, db)
	agg := testAggregator(t, db, s)
	mat := seedChild(t, db, "DUPONT", "Léa", models.CategoryMaternelle)
	elem := seedChild(t, db, "MARTIN", "Hugo", models.CategoryElementaire)

	_, err := s.CheckIn(testDate, models.SessionSoir, mat.ID)
	require.NoError(t, err)
	_, err = s.CheckIn(testDate, models.SessionSoir, elem.ID)
	require.NoError(t, err)

	// L'appelant restreint à Maternelle demande explicitement Élémentaire :
	// il ne voit quand même que sa classe, liste et candidats compris.
	view, err := agg.Build(SessionQuery{
		Date: testDate, SessionType: models.SessionSoir,
		Search: "martin", Category: models.CategoryElementaire,
		CallerAccess: models.CategoryMaternelle,
	})
	require.NoError(t, err)
	require.Len(t, view.Records, 1)
	assert.Equal(t, mat.ID, view.Records[0].ChildID)
	assert.Empty(t, view.Candidates)
	assert.Equal(t, 1, view.TotalCount)
}

func TestSessionSortFrenchCollation(t *testing.T) {
	db := testDB(t)
	s := testStore(t, db)
	agg := testAggregator(t, db, s)
	leclerc := seedChild(t, db, "LECLERC", "Emma", models.CategoryMaternelle)
	evrard := seedChild(t, db, "ÉVRARD", "Tom", models.CategoryMaternelle)
	dupont := seedChild(t, db, "DUPONT", "Léa", models.CategoryMaternelle)

	for _, id := range []uint{leclerc.ID, evrard.ID, dupont.ID} {
		_, err := s.CheckIn(testDate, models.SessionSoir, id)
		require.NoError(t, err)
	}
	// Tri alphabétique pur : un enfant parti reste à sa place.
	recs, err := s.ListBySession(testDate, models.SessionSoir, models.CategoryAll)
	require.NoError(t, err)
	for _, r := range recs {
		if r.ChildID == dupont.ID {
			_, err = s.CheckOut(r.ID)
			require.NoError(t, err)
		}
	}

	view, err := agg.Build(SessionQuery{
		Date: testDate, SessionType: models.SessionSoir,
		CallerAccess: models.CategoryAll,
	})
	require.NoError(t, err)
	require.Len(t, view.Records, 3)
	// É se classe avec E : DUPONT, ÉVRARD, LECLERC.
	assert.Equal(t, "DUPONT", view.Records[0].Child.LastName)
	assert.Equal(t, "ÉVRARD", view.Records[1].Child.LastName)
	assert.Equal(t, "LECLERC", view.Records[2].Child.LastName)

	assert.Equal(t, 3, view.TotalCount)
	assert.Equal(t, 2, view.ActiveCount)
}

func TestSessionPlannedNotesForPresentChildren(t *testing.T) {
	db := testDB(t)
	s := testStore(t, db)
	notes := planning.NewNoteStore(db)
	agg := NewAggregator(db, s, notes)

	dupont := seedChild(t, db, "DUPONT", "Léa", models.CategoryMaternelle)
	martin := seedChild(t, db, "MARTIN", "Hugo", models.CategoryMaternelle)

	_, err := notes.Create(dupont.ID, "Part avec sa grand-mère", []string{testDate})
	require.NoError(t, err)
	_, err = notes.Create(martin.ID, "Piano à 16h30", []string{testDate})
	require.NoError(t, err)

	// Seule DUPONT est pointée : la note de MARTIN ne remonte pas.
	_, err = s.CheckIn(testDate, models.SessionSoir, dupont.ID)
	require.NoError(t, err)

	view, err := agg.Build(SessionQuery{
		Date: testDate, SessionType: models.SessionSoir,
		CallerAccess: models.CategoryAll,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Part avec sa grand-mère"}, view.PlannedNotes[dupont.ID])
	_, ok := view.PlannedNotes[martin.ID]
	assert.False(t, ok)
}
