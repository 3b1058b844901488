package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/okian/scout/internal/domain/roles"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPGRoleStore(t *testing.T) {
	Convey("Given a Postgres role store on a mock database", t, func() {
		ctx := context.Background()
		db, mock, err := sqlmock.New()
		So(err, ShouldBeNil)
		defer func() { _ = db.Close() }()

		dir := t.TempDir()
		store := NewPGRoleStore(db, writeBaseline(t, dir, sampleRoles()))
		insert := regexp.QuoteMeta("INSERT INTO roles (id, name, category, phase, weights, updated_at)")

		Convey("When saving a role set", func() {
			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM roles").WillReturnResult(sqlmock.NewResult(0, 5))
			mock.ExpectExec(insert).
				WithArgs("inpossession-striker-advanced-forward", "Advanced Forward", "Striker", "InPossession",
					`{"Composure":2,"Finishing":3,"Pace":3}`).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec(insert).
				WithArgs("outpossession-striker-pressing-forward", "Pressing Forward", "Striker", "OutPossession",
					`{"Stamina":3,"WorkRate":3}`).
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			err := store.Save(ctx, sampleRoles())

			Convey("Then the table is replaced in one transaction", func() {
				So(err, ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When an insert fails", func() {
			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM roles").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(insert).WillReturnError(errors.New("boom"))
			mock.ExpectRollback()

			err := store.Save(ctx, sampleRoles())

			Convey("Then the transaction is rolled back", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "boom")
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When a role has no id", func() {
			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM roles").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(insert).
				WithArgs(sqlmock.AnyArg(), "Libero", "", "InPossession", "{}").
				WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			err := store.Save(ctx, []roles.Definition{{Name: "Libero", Phase: roles.PhaseInPossession}})

			Convey("Then one is generated and weights default to an empty object", func() {
				So(err, ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When loading", func() {
			rows := sqlmock.NewRows([]string{"id", "name", "category", "phase", "weights"}).
				AddRow("a", "Advanced Forward", "Striker", "InPossession", []byte(`{"Pace":3}`)).
				AddRow("b", "Pressing Forward", "Striker", "OutPossession", []byte(`{}`))
			mock.ExpectQuery("SELECT id, name, category, phase, weights").WillReturnRows(rows)

			defs, err := store.Load(ctx)

			Convey("Then rows decode into definitions", func() {
				So(err, ShouldBeNil)
				So(len(defs), ShouldEqual, 2)
				So(defs[0].Weights["Pace"], ShouldEqual, 3)
				So(defs[1].Weights, ShouldBeEmpty)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When stored weights are corrupt", func() {
			rows := sqlmock.NewRows([]string{"id", "name", "category", "phase", "weights"}).
				AddRow("a", "Advanced Forward", "Striker", "InPossession", []byte(`{nope`))
			mock.ExpectQuery("SELECT id, name, category, phase, weights").WillReturnRows(rows)

			_, err := store.Load(ctx)

			Convey("Then the error names the role", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "weights for a")
			})
		})

		Convey("When initialising an empty table", func() {
			mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM roles")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			mock.ExpectBegin()
			mock.ExpectExec("DELETE FROM roles").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(1, 1))
			mock.ExpectCommit()

			Convey("Then it is seeded from the baseline", func() {
				So(store.Init(ctx), ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When initialising a populated table", func() {
			mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM roles")).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

			Convey("Then nothing is written", func() {
				So(store.Init(ctx), ShouldBeNil)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})

		Convey("When resetting without a baseline", func() {
			missing := NewPGRoleStore(db, filepath.Join(dir, "gone.json"))
			_, err := missing.ResetToBaseline(ctx)

			Convey("Then the store is untouched", func() {
				So(errors.Is(err, ErrBaselineMissing), ShouldBeTrue)
				So(mock.ExpectationsWereMet(), ShouldBeNil)
			})
		})
	})
}

func TestConnect(t *testing.T) {
	Convey("Given an empty database url", t, func() {
		_, err := Connect(context.Background(), "  ")
		So(err, ShouldNotBeNil)
	})

	Convey("Given a database that answers pings", t, func() {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		So(err, ShouldBeNil)
		mock.ExpectPing()

		prev := openDB
		openDB = func(driver, dsn string) (*sql.DB, error) {
			So(driver, ShouldEqual, "pgx")
			return db, nil
		}
		defer func() { openDB = prev }()

		got, err := Connect(context.Background(), "postgres://scout@localhost/scout")

		Convey("Then the pool is returned", func() {
			So(err, ShouldBeNil)
			So(got, ShouldEqual, db)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})
	})
}
