package sqlbuilder

import (
	"strings"
	"testing"

	"github.com/koustreak/ddlgen/internal/dialect"
	"github.com/koustreak/ddlgen/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuilder(t *testing.T, f dialect.Flavor) *Builder {
	t.Helper()
	b, err := New(f)
	require.NoError(t, err)
	return b
}

func TestNew_UnknownFlavor(t *testing.T) {
	_, err := New("dbase")
	require.Error(t, err)
	assert.True(t, errs.IsUnsupportedDialect(err))
}

func TestNew_EveryDialectFlavorHasCompiler(t *testing.T) {
	for _, d := range dialect.All() {
		f, err := d.Flavor()
		require.NoError(t, err)
		b, err := New(f)
		require.NoError(t, err, d.String())
		assert.Equal(t, f, b.Flavor())
	}
}

func TestCreateTable(t *testing.T) {
	tests := []struct {
		name      string
		flavor    dialect.Flavor
		namespace string
		build     func(b *Builder, t *Table)
		want      []string
	}{
		{
			name:      "postgres with comment statement",
			flavor:    dialect.FlavorPostgres,
			namespace: "public",
			build: func(b *Builder, t *Table) {
				t.Primary([]string{"tenant"})
				t.Increments("id").NotNullable()
				t.SpecificType("tenant", "int").NotNullable()
				t.SpecificType("email", "varchar(255)").DefaultTo(b.Raw("'x'")).Comment("Login").Nullable()
			},
			want: []string{
				`create table "public"."users" ("id" serial not null, "tenant" int not null, "email" varchar(255) null default 'x', constraint "users_pkey" primary key ("tenant"))`,
				`comment on column "public"."users"."email" is 'Login'`,
			},
		},
		{
			name:   "postgres unsigned is ignored",
			flavor: dialect.FlavorPostgres,
			build: func(b *Builder, t *Table) {
				t.SpecificType("qty", "integer").Unsigned().NotNullable()
			},
			want: []string{`create table "users" ("qty" integer not null)`},
		},
		{
			name:   "mysql inline comment and unsigned",
			flavor: dialect.FlavorMySQL,
			build: func(b *Builder, t *Table) {
				t.Increments("id").Unsigned().NotNullable()
				t.SpecificType("qty", "int").Unsigned().DefaultTo(b.Raw("0")).Comment("it's").NotNullable()
			},
			want: []string{
				"create table `users` (`id` int unsigned auto_increment primary key not null, `qty` int unsigned not null default 0 comment 'it''s')",
			},
		},
		{
			name:   "mssql extended property in dbo",
			flavor: dialect.FlavorMSSQL,
			build: func(b *Builder, t *Table) {
				t.Increments("id").NotNullable()
				t.SpecificType("label", "nvarchar(50)").Comment("Shown in UI").Nullable()
			},
			want: []string{
				"create table [users] ([id] int identity(1,1) primary key not null, [label] nvarchar(50) null)",
				"exec sp_addextendedproperty N'MS_Description', N'Shown in UI', N'Schema', N'dbo', N'Table', N'users', N'Column', N'label'",
			},
		},
		{
			name:   "sqlite drops comments",
			flavor: dialect.FlavorSQLite,
			build: func(b *Builder, t *Table) {
				t.Increments("id").NotNullable()
				t.SpecificType("body", "text").Comment("ignored").DefaultTo(b.Raw("''")).Nullable()
			},
			want: []string{`create table "users" ("id" integer primary key autoincrement not null, "body" text null default '')`},
		},
		{
			name:      "oracle default precedes nullability",
			flavor:    dialect.FlavorOracle,
			namespace: "HR",
			build: func(b *Builder, t *Table) {
				t.SpecificType("hired", "date").DefaultTo(b.Raw("sysdate")).NotNullable()
			},
			want: []string{`create table "HR"."users" ("hired" date default sysdate not null)`},
		},
		{
			name:      "firebird bare identifiers",
			flavor:    dialect.FlavorFirebird,
			namespace: "MYDB",
			build: func(b *Builder, t *Table) {
				t.Primary([]string{"id", "code"})
				t.Increments("id").NotNullable()
				t.SpecificType("code", "varchar(8)").Comment("Short code").NotNullable()
				t.SpecificType("note", "blob sub_type text").Nullable()
			},
			want: []string{
				"create table MYDB.users (id integer generated by default as identity not null, code varchar(8) not null, note blob sub_type text, constraint users_pkey primary key (id, code))",
				"comment on column MYDB.users.code is 'Short code'",
			},
		},
		{
			name:      "bigquery options and unenforced key",
			flavor:    dialect.FlavorBigQuery,
			namespace: "analytics",
			build: func(b *Builder, t *Table) {
				t.Primary([]string{"id"})
				t.Increments("id").NotNullable()
				t.SpecificType("payload", "json").DefaultTo(b.Raw("json '{}'")).Comment(`raw "event"`).Nullable()
			},
			want: []string{
				"create table `analytics`.`users` (`id` int64 not null, `payload` json default json '{}' options(description=\"raw \\\"event\\\"\"), primary key (`id`) not enforced)",
			},
		},
		{
			name:      "cassandra ignores column modifiers",
			flavor:    dialect.FlavorCassandra,
			namespace: "ks",
			build: func(b *Builder, t *Table) {
				t.Primary([]string{"id", "name"})
				t.Increments("id").NotNullable()
				t.SpecificType("name", "text").DefaultTo(b.Raw("'x'")).Comment("c").Unsigned().Nullable()
			},
			want: []string{`create table "ks"."users" ("id" int, "name" text, primary key ("id", "name"))`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBuilder(t, tt.flavor)
			sb := b.Schema()
			if tt.namespace != "" {
				sb = b.WithSchema(tt.namespace)
			}
			ct := sb.CreateTable("users", func(tbl *Table) { tt.build(b, tbl) })
			assert.Equal(t, tt.want, ct.Statements())
		})
	}
}

func TestCreateTable_IncrementsWithTablePrimaryKey(t *testing.T) {
	tests := []struct {
		name    string
		flavor  dialect.Flavor
		primary []string
		want    string
	}{
		{
			name:    "postgres",
			flavor:  dialect.FlavorPostgres,
			primary: []string{"tenant"},
			want:    `create table "t" ("id" serial not null, "tenant" int not null, constraint "t_pkey" primary key ("tenant"))`,
		},
		{
			name:    "redshift",
			flavor:  dialect.FlavorRedshift,
			primary: []string{"id", "tenant"},
			want:    `create table "t" ("id" integer identity(1,1) not null, "tenant" int not null, constraint "t_pkey" primary key ("id", "tenant"))`,
		},
		{
			name:    "mysql keeps auto column unique",
			flavor:  dialect.FlavorMySQL,
			primary: []string{"tenant"},
			want:    "create table `t` (`id` int unsigned auto_increment not null, `tenant` int not null, constraint `t_pkey` primary key (`tenant`), unique (`id`))",
		},
		{
			name:    "mysql auto column inside composite key",
			flavor:  dialect.FlavorMySQL,
			primary: []string{"id", "tenant"},
			want:    "create table `t` (`id` int unsigned auto_increment not null, `tenant` int not null, constraint `t_pkey` primary key (`id`, `tenant`))",
		},
		{
			name:    "mssql",
			flavor:  dialect.FlavorMSSQL,
			primary: []string{"id", "tenant"},
			want:    "create table [t] ([id] int identity(1,1) not null, [tenant] int not null, constraint [t_pkey] primary key ([id], [tenant]))",
		},
		{
			name:    "sqlite falls back to plain integer",
			flavor:  dialect.FlavorSQLite,
			primary: []string{"id", "tenant"},
			want:    `create table "t" ("id" integer not null, "tenant" int not null, constraint "t_pkey" primary key ("id", "tenant"))`,
		},
		{
			name:    "oracle",
			flavor:  dialect.FlavorOracle,
			primary: []string{"tenant"},
			want:    `create table "t" ("id" integer generated by default as identity not null, "tenant" int not null, constraint "t_pkey" primary key ("tenant"))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := mustBuilder(t, tt.flavor).Schema().CreateTable("t", func(tbl *Table) {
				tbl.Primary(tt.primary)
				tbl.Increments("id").NotNullable()
				tbl.SpecificType("tenant", "int").NotNullable()
			}).ToQuery()
			assert.Equal(t, tt.want, q)
			assert.Equal(t, 1, strings.Count(q, "primary key"))
		})
	}
}

func TestToQuery_JoinsStatements(t *testing.T) {
	b := mustBuilder(t, dialect.FlavorPostgres)
	q := b.Schema().CreateTable("t", func(tbl *Table) {
		tbl.SpecificType("a", "int").Comment("first").NotNullable()
		tbl.SpecificType("b", "int").Comment("second").NotNullable()
	}).ToQuery()

	assert.Equal(t,
		`create table "t" ("a" int not null, "b" int not null);`+"\n"+
			`comment on column "t"."a" is 'first';`+"\n"+
			`comment on column "t"."b" is 'second'`,
		q)
}

func TestColumn_WithoutNullabilityCall(t *testing.T) {
	b := mustBuilder(t, dialect.FlavorMySQL)
	q := b.Schema().CreateTable("t", func(tbl *Table) {
		tbl.SpecificType("a", "int")
	}).ToQuery()
	assert.Equal(t, "create table `t` (`a` int)", q)
}

func TestQuoting_EscapesDelimiters(t *testing.T) {
	assert.Equal(t, `"we""ird"`, ansiIdent(`we"ird`))
	assert.Equal(t, "`we``ird`", backtickIdent("we`ird"))
	assert.Equal(t, "[we]]ird]", bracketIdent("we]ird"))
	assert.Equal(t, "`we\\`ird`", bigqueryIdent("we`ird"))
	assert.Equal(t, "a.b", bareIdent("a", "b"))
	assert.Equal(t, `'it''s'`, stdLiteral("it's"))
	assert.Equal(t, `'a\\b'`, mysqlLiteral(`a\b`))
	assert.Equal(t, `N'x'`, nationalLiteral("x"))
	assert.Equal(t, `'it''s'`, pgLiteral("it's"))
}

func TestTableRef(t *testing.T) {
	b := mustBuilder(t, dialect.FlavorMSSQL)
	assert.Equal(t, "[sales].[orders]", b.WithSchema("sales").CreateTable("orders", nil).TableRef())
	assert.Equal(t, "[orders]", b.Schema().CreateTable("orders", nil).TableRef())
}
