package service

import (
	"context"
	"testing"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/daterange"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/dto"
	"github.com/wakil69/BuildingManagementSaas-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := daterange.Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func creerConvention(t *testing.T, f *fixture, numero string, ug model.UG, debut, fin string) uuid.UUID {
	t.Helper()
	resp, err := f.conventions.CreateConvention(context.Background(), f.acteur, dto.CreerConventionRequest{
		Numero:          numero,
		TypeConvention:  "pepiniere",
		TypeLocataire:   "PM",
		RaisonSociale:   "Atelier Lumière SARL",
		StatutJuridique: "SARL",
		DateDebut:       debut,
		UGs: []dto.AffectationUGRequest{{
			UGID:      ug.ID.String(),
			Surface:   decimal.NewFromInt(20),
			DateDebut: debut,
			DateFin:   fin,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Version)
	id, err := uuid.Parse(resp.ConventionID)
	require.NoError(t, err)
	return id
}

func TestCreateConvention(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-001", f.ugs[0], "2024-01-01", "")

	infos, err := f.conventions.GetVersion(ctx, f.acteur, id, 1)
	require.NoError(t, err)
	assert.Equal(t, "CONV-001", infos.Convention.Numero)
	assert.Equal(t, string(model.StatutInitial), infos.Version.Statut)
	assert.True(t, infos.Version.Derniere)
	require.Len(t, infos.UGs, 1)
	assert.Nil(t, infos.UGs[0].DateFin)

	t.Run("numero already used", func(t *testing.T) {
		_, err := f.conventions.CreateConvention(ctx, f.acteur, dto.CreerConventionRequest{
			Numero: "CONV-001", TypeConvention: "centre", TypeLocataire: "PP", RaisonSociale: "Jean Dupont",
			DateDebut: "2025-01-01",
			UGs:       []dto.AffectationUGRequest{{UGID: f.ugs[1].ID.String(), Surface: decimal.NewFromInt(10), DateDebut: "2025-01-01"}},
		})
		assert.ErrorIs(t, err, ErrNumeroExistant)
	})

	t.Run("unit already leased elsewhere", func(t *testing.T) {
		_, err := f.conventions.CreateConvention(ctx, f.acteur, dto.CreerConventionRequest{
			Numero: "CONV-002", TypeConvention: "centre", TypeLocataire: "PP", RaisonSociale: "Jean Dupont",
			DateDebut: "2025-01-01",
			UGs:       []dto.AffectationUGRequest{{UGID: f.ugs[0].ID.String(), Surface: decimal.NewFromInt(10), DateDebut: "2025-01-01"}},
		})
		assert.ErrorIs(t, err, daterange.ErrOpenPeriodExists)
		assert.Contains(t, err.Error(), "B101")
	})

	t.Run("unit assigned before the convention starts", func(t *testing.T) {
		_, err := f.conventions.CreateConvention(ctx, f.acteur, dto.CreerConventionRequest{
			Numero: "CONV-003", TypeConvention: "centre", TypeLocataire: "PM", RaisonSociale: "Acme",
			DateDebut: "2025-01-01",
			UGs:       []dto.AffectationUGRequest{{UGID: f.ugs[2].ID.String(), Surface: decimal.NewFromInt(10), DateDebut: "2024-12-31"}},
		})
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})
}

func TestCreateAmendment_AddUnitKeepsPreviousVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-010", f.ugs[0], "2024-01-01", "")

	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutUG{
		UGID:      f.ugs[1].ID,
		Surface:   decimal.NewFromInt(15),
		DateDebut: day("2024-03-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v2, err := f.conventions.GetVersion(ctx, f.acteur, id, 2)
	require.NoError(t, err)
	assert.Equal(t, string(model.StatutAvenantLocal), v2.Version.Statut)
	require.Len(t, v2.UGs, 2)
	assert.Equal(t, f.ugs[0].ID.String(), v2.UGs[0].UGID)
	assert.Equal(t, "2024-01-01", v2.UGs[0].DateDebut)
	assert.Equal(t, f.ugs[1].ID.String(), v2.UGs[1].UGID)
	assert.Equal(t, "2024-03-01", v2.UGs[1].DateDebut)

	v1, err := f.conventions.GetVersion(ctx, f.acteur, id, 1)
	require.NoError(t, err)
	require.Len(t, v1.UGs, 1)
	assert.False(t, v1.Version.Derniere)
	// Carried rows keep their line identity across versions.
	assert.Equal(t, v1.UGs[0].LigneID, v2.UGs[0].LigneID)
	assert.NotEqual(t, v1.UGs[0].ID, v2.UGs[0].ID)
}

func TestCreateAmendment_RoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-020", f.ugs[0], "2024-01-01", "")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutEquipement{
		Libelle: "Armoire forte", Quantite: 1, PrixUnitaire: decimal.NewFromInt(15), DateDebut: day("2024-02-01"),
	})
	require.NoError(t, err)
	before, err := f.conventions.GetVersion(ctx, f.acteur, id, 2)
	require.NoError(t, err)

	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 2, ChangementEntite{
		RaisonSociale: "Atelier Lumière SAS", DateEffet: day("2024-04-01"),
	})
	require.NoError(t, err)
	after, err := f.conventions.GetVersion(ctx, f.acteur, id, v)
	require.NoError(t, err)

	assert.Equal(t, "Atelier Lumière SAS", after.Version.RaisonSociale)
	assert.Equal(t, before.Version.StatutJuridique, after.Version.StatutJuridique)
	require.Len(t, after.UGs, len(before.UGs))
	require.Len(t, after.Equipements, len(before.Equipements))
	for i := range before.UGs {
		assert.Equal(t, before.UGs[i].LigneID, after.UGs[i].LigneID)
		assert.Equal(t, before.UGs[i].DateDebut, after.UGs[i].DateDebut)
		assert.Equal(t, before.UGs[i].DateFin, after.UGs[i].DateFin)
		assert.True(t, before.UGs[i].Surface.Equal(after.UGs[i].Surface))
	}
	assert.Equal(t, before.Equipements[0].LigneID, after.Equipements[0].LigneID)
	assert.Equal(t, "Armoire forte", after.Equipements[0].Libelle)
}

func TestCreateAmendment_ChainIsDense(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-030", f.ugs[0], "2024-01-01", "")

	deltas := []Delta{
		ChangementStatutJuridique{StatutJuridique: "SAS", DateEffet: day("2024-02-01")},
		AjoutUG{UGID: f.ugs[1].ID, Surface: decimal.NewFromInt(12), DateDebut: day("2024-03-01")},
		RetraitUG{UGID: f.ugs[1].ID, DateFin: day("2024-05-31")},
		ChangementEntite{RaisonSociale: "Lumière Studio", DateEffet: day("2024-06-01")},
	}
	for i, d := range deltas {
		v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, i+1, d)
		require.NoError(t, err)
		assert.Equal(t, i+2, v)
	}

	versions, err := f.conventions.ListVersions(ctx, f.acteur, id)
	require.NoError(t, err)
	require.Len(t, versions, len(deltas)+1)
	for i, v := range versions {
		assert.Equal(t, i+1, v.Version)
		assert.Equal(t, i == len(versions)-1, v.Derniere)
	}

	// The unit closed on 2024-05-31 stays in every later version with its end date.
	last, err := f.conventions.GetVersion(ctx, f.acteur, id, len(versions))
	require.NoError(t, err)
	require.Len(t, last.UGs, 2)
	assert.Equal(t, f.ugs[0].ID.String(), last.UGs[0].UGID)
	assert.Nil(t, last.UGs[0].DateFin)
	assert.Equal(t, f.ugs[1].ID.String(), last.UGs[1].UGID)
	require.NotNil(t, last.UGs[1].DateFin)
	assert.Equal(t, "2024-05-31", *last.UGs[1].DateFin)
}

func TestCreateAmendment_EndedRowsAreCarried(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-025", f.ugs[0], "2024-01-01", "2024-06-30")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutEquipement{
		Libelle: "Casier", Quantite: 2, PrixUnitaire: decimal.NewFromInt(5),
		DateDebut: day("2024-01-15"), DateFin: dayPtr("2024-03-31"),
	})
	require.NoError(t, err)
	before, err := f.conventions.GetVersion(ctx, f.acteur, id, 2)
	require.NoError(t, err)

	// Effective after every row has ended: nothing but the name may change.
	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 2, ChangementEntite{
		RaisonSociale: "Atelier Lumière SAS", DateEffet: day("2024-09-01"),
	})
	require.NoError(t, err)
	after, err := f.conventions.GetVersion(ctx, f.acteur, id, v)
	require.NoError(t, err)

	assert.Equal(t, "Atelier Lumière SAS", after.Version.RaisonSociale)
	require.Len(t, after.UGs, 1)
	assert.Equal(t, before.UGs[0].LigneID, after.UGs[0].LigneID)
	assert.Equal(t, before.UGs[0].UGID, after.UGs[0].UGID)
	assert.Equal(t, before.UGs[0].DateDebut, after.UGs[0].DateDebut)
	require.NotNil(t, after.UGs[0].DateFin)
	assert.Equal(t, "2024-06-30", *after.UGs[0].DateFin)
	require.Len(t, after.Equipements, 1)
	assert.Equal(t, before.Equipements[0].LigneID, after.Equipements[0].LigneID)
	require.NotNil(t, after.Equipements[0].DateFin)
	assert.Equal(t, "2024-03-31", *after.Equipements[0].DateFin)
}

func TestCreateAmendment_EndedAssignmentStillBlocksOtherConventions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := creerConvention(t, f, "CONV-026", f.ugs[0], "2024-01-01", "2024-06-30")

	// A moves on to another unit; its past hold on B101 must survive.
	v, err := f.conventions.CreateAmendment(ctx, f.acteur, a, 1, AjoutUG{
		UGID: f.ugs[1].ID, Surface: decimal.NewFromInt(12), DateDebut: day("2024-09-01"),
	})
	require.NoError(t, err)
	infos, err := f.conventions.GetVersion(ctx, f.acteur, a, v)
	require.NoError(t, err)
	require.Len(t, infos.UGs, 2)

	_, err = f.conventions.CreateConvention(ctx, f.acteur, dto.CreerConventionRequest{
		Numero: "CONV-027", TypeConvention: "centre", TypeLocataire: "PP", RaisonSociale: "Jean Dupont",
		DateDebut: "2024-03-01",
		UGs: []dto.AffectationUGRequest{{
			UGID: f.ugs[0].ID.String(), Surface: decimal.NewFromInt(10), DateDebut: "2024-03-01", DateFin: "2024-03-31",
		}},
	})
	assert.ErrorIs(t, err, daterange.ErrOverlapDetected)
	assert.Contains(t, err.Error(), "B101")

	// Backdating an amendment onto the released unit is rejected the same way.
	b := creerConvention(t, f, "CONV-028", f.ugs[2], "2024-01-01", "")
	_, err = f.conventions.CreateAmendment(ctx, f.acteur, b, 1, AjoutUG{
		UGID: f.ugs[0].ID, Surface: decimal.NewFromInt(10), DateDebut: day("2024-05-01"),
	})
	assert.ErrorIs(t, err, daterange.ErrOverlapDetected)

	// From the day after the release the unit is free.
	v, err = f.conventions.CreateAmendment(ctx, f.acteur, b, 1, AjoutUG{
		UGID: f.ugs[0].ID, Surface: decimal.NewFromInt(10), DateDebut: day("2024-07-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCreateAmendment_EffectiveDateBeforeStart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-045", f.ugs[0], "2024-01-01", "")

	for name, d := range map[string]Delta{
		"entite":           ChangementEntite{RaisonSociale: "Ancienne", DateEffet: day("1990-01-01")},
		"statut juridique": ChangementStatutJuridique{StatutJuridique: "SA", DateEffet: day("2023-12-31")},
		"equipement":       AjoutEquipement{Libelle: "Casier", Quantite: 1, DateDebut: day("2023-06-01")},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, d)
			assert.ErrorIs(t, err, ErrEffetAvantDebut)
			assert.ErrorIs(t, err, daterange.ErrInvalidRange)
			assert.True(t, IsValidation(err))
		})
	}

	versions, err := f.conventions.ListVersions(ctx, f.acteur, id)
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	// The start day itself is accepted.
	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, ChangementEntite{RaisonSociale: "Nouvelle", DateEffet: day("2024-01-01")})
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCreateAmendment_RemovalMustShortenARunningRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-046", f.ugs[0], "2024-01-01", "")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutEquipement{
		Libelle: "Armoire forte", Quantite: 1, PrixUnitaire: decimal.NewFromInt(15),
		DateDebut: day("2024-02-01"), DateFin: dayPtr("2024-06-30"),
	})
	require.NoError(t, err)
	v2, err := f.conventions.GetVersion(ctx, f.acteur, id, 2)
	require.NoError(t, err)
	ligne := uuid.MustParse(v2.Equipements[0].LigneID)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 2, RetraitEquipement{LigneID: ligne, DateFin: day("2024-09-30")})
	assert.ErrorIs(t, err, ErrEquipementNonActif, "cannot extend a closed line")
	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 2, RetraitEquipement{LigneID: ligne, DateFin: day("2024-06-30")})
	assert.ErrorIs(t, err, ErrEquipementNonActif, "already ends on that day")

	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 2, RetraitEquipement{LigneID: ligne, DateFin: day("2024-04-30")})
	require.NoError(t, err)
	infos, err := f.conventions.GetVersion(ctx, f.acteur, id, v)
	require.NoError(t, err)
	require.NotNil(t, infos.Equipements[0].DateFin)
	assert.Equal(t, "2024-04-30", *infos.Equipements[0].DateFin)

	v, err = f.conventions.CreateAmendment(ctx, f.acteur, id, v, RetraitUG{UGID: f.ugs[0].ID, DateFin: day("2024-12-31")})
	require.NoError(t, err)
	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, v, RetraitUG{UGID: f.ugs[0].ID, DateFin: day("2024-12-31")})
	assert.ErrorIs(t, err, ErrUGNonAffectee)

	versions, err := f.conventions.ListVersions(ctx, f.acteur, id)
	require.NoError(t, err)
	assert.Len(t, versions, 4)
}

func TestCreateAmendment_StaleVersion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-040", f.ugs[0], "2024-01-01", "")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, ChangementEntite{RaisonSociale: "A", DateEffet: day("2024-02-01")})
	require.NoError(t, err)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 1, ChangementEntite{RaisonSociale: "B", DateEffet: day("2024-03-01")})
	assert.ErrorIs(t, err, ErrStaleVersion)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, uuid.New(), 1, ChangementEntite{RaisonSociale: "C", DateEffet: day("2024-03-01")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateAmendment_UnitTakenByAnotherConvention(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	autre := creerConvention(t, f, "CONV-050", f.ugs[1], "2024-01-01", "2024-06-30")
	id := creerConvention(t, f, "CONV-051", f.ugs[0], "2024-01-01", "")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutUG{
		UGID: f.ugs[1].ID, Surface: decimal.NewFromInt(10), DateDebut: day("2024-06-30"),
	})
	assert.ErrorIs(t, err, daterange.ErrOverlapDetected)

	v, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutUG{
		UGID: f.ugs[1].ID, Surface: decimal.NewFromInt(10), DateDebut: day("2024-07-01"),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// Ending the other convention early only shortens its own rows.
	_, err = f.conventions.Terminate(ctx, f.acteur, autre, 1, "2024-03-31")
	require.NoError(t, err)
}

func TestCreateAmendment_UnknownRows(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-060", f.ugs[0], "2024-01-01", "")

	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, RetraitUG{UGID: f.ugs[2].ID, DateFin: day("2024-05-01")})
	assert.ErrorIs(t, err, ErrUGNonAffectee)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 1, RetraitEquipement{LigneID: uuid.New(), DateFin: day("2024-05-01")})
	assert.ErrorIs(t, err, ErrEquipementInconnu)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutUG{UGID: uuid.New(), Surface: decimal.NewFromInt(5), DateDebut: day("2024-05-01")})
	assert.ErrorIs(t, err, ErrUGInconnue)

	versions, err := f.conventions.ListVersions(ctx, f.acteur, id)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestTerminate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := creerConvention(t, f, "CONV-070", f.ugs[0], "2024-01-01", "")
	_, err := f.conventions.CreateAmendment(ctx, f.acteur, id, 1, AjoutUG{
		UGID: f.ugs[1].ID, Surface: decimal.NewFromInt(10), DateDebut: day("2025-01-01"),
	})
	require.NoError(t, err)

	t.Run("missing date", func(t *testing.T) {
		_, err := f.conventions.Terminate(ctx, f.acteur, id, 2, "")
		assert.ErrorIs(t, err, ErrMissingTerminationDate)
	})

	t.Run("before the start of the convention", func(t *testing.T) {
		_, err := f.conventions.Terminate(ctx, f.acteur, id, 2, "2023-12-31")
		assert.ErrorIs(t, err, ErrTerminationBeforeStart)
		assert.ErrorIs(t, err, daterange.ErrInvalidRange)
	})

	v, err := f.conventions.Terminate(ctx, f.acteur, id, 2, "2024-09-30")
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	infos, err := f.conventions.GetVersion(ctx, f.acteur, id, 3)
	require.NoError(t, err)
	assert.True(t, infos.Version.Terminale)
	require.NotNil(t, infos.Version.DateFin)
	assert.Equal(t, "2024-09-30", *infos.Version.DateFin)
	// The unit that would only start in 2025 is dropped; the running one is closed.
	require.Len(t, infos.UGs, 1)
	require.NotNil(t, infos.UGs[0].DateFin)
	assert.Equal(t, "2024-09-30", *infos.UGs[0].DateFin)

	_, err = f.conventions.CreateAmendment(ctx, f.acteur, id, 3, ChangementEntite{RaisonSociale: "X", DateEffet: day("2024-10-01")})
	assert.ErrorIs(t, err, ErrAgreementTerminated)
	_, err = f.conventions.Terminate(ctx, f.acteur, id, 3, "2024-10-31")
	assert.ErrorIs(t, err, ErrAgreementTerminated)

	versions, err := f.conventions.ListVersions(ctx, f.acteur, id)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	last := versions[len(versions)-1]
	assert.Equal(t, string(model.StatutResiliation), last.Statut)
	assert.True(t, last.Derniere)

	// The unit is free again once the convention has ended.
	_, err = f.conventions.CreateConvention(ctx, f.acteur, dto.CreerConventionRequest{
		Numero: "CONV-071", TypeConvention: "pepiniere", TypeLocataire: "PM", RaisonSociale: "Suivant",
		DateDebut: "2024-10-01",
		UGs:       []dto.AffectationUGRequest{{UGID: f.ugs[0].ID.String(), Surface: decimal.NewFromInt(20), DateDebut: "2024-10-01"}},
	})
	assert.NoError(t, err)
}

func TestDeltaFromRequests(t *testing.T) {
	ug := uuid.New()

	d, err := DeltaFromAvenantLocal(dto.AvenantLocalRequest{Action: "ajout", UGID: ug.String(), Surface: decimal.NewFromInt(9), DateDebut: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, AjoutUG{UGID: ug, Surface: decimal.NewFromInt(9), DateDebut: day("2024-01-01")}, d)

	d, err = DeltaFromAvenantLocal(dto.AvenantLocalRequest{Action: "retrait", UGID: ug.String(), DateFin: "2024-04-30"})
	require.NoError(t, err)
	assert.Equal(t, RetraitUG{UGID: ug, DateFin: day("2024-04-30")}, d)

	_, err = DeltaFromAvenantLocal(dto.AvenantLocalRequest{Action: "ajout", UGID: ug.String()})
	assert.ErrorIs(t, err, daterange.ErrMissingStartDate)

	_, err = DeltaFromAvenantLocal(dto.AvenantLocalRequest{Action: "retrait", UGID: ug.String()})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	d, err = DeltaFromAvenantEquipement(dto.AvenantEquipementRequest{
		Action: "ajout", Libelle: "Casier", Quantite: 2, PrixUnitaire: decimal.NewFromInt(5),
		DateDebut: "2024-01-01", DateFin: "2024-12-31",
	})
	require.NoError(t, err)
	assert.Equal(t, AjoutEquipement{
		Libelle: "Casier", Quantite: 2, PrixUnitaire: decimal.NewFromInt(5),
		DateDebut: day("2024-01-01"), DateFin: dayPtr("2024-12-31"),
	}, d)

	_, err = DeltaFromAvenantEquipement(dto.AvenantEquipementRequest{Action: "ajout", Quantite: 1, DateDebut: "2024-01-01"})
	assert.ErrorIs(t, err, ErrMissingRequiredField)

	_, err = DeltaFromStatutJuridique(dto.AvenantStatutJuridiqueRequest{StatutJuridique: "SAS", DateEffet: "01/02/2024"})
	assert.ErrorIs(t, err, ErrDateInvalide)

	d, err = DeltaFromEntite(dto.AvenantEntiteRequest{RaisonSociale: "Nouvelle", DateEffet: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, model.StatutAvenantEntite, d.Statut())
}
