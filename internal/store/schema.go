package store

import "github.com/mesh-intelligence/shelf/pkg/types"

// Column names of the catalog tables.
const (
	colAuthorID    = "id_autor"
	colFirstName   = "nombre"
	colLastName    = "apellidos"
	colNationality = "nacionalidad"
	colBirthDate   = "fecha_nacimiento"

	colBookID      = "id_libro"
	colTitle       = "titulo"
	colISBN        = "isbn"
	colPublishedOn = "fecha_publicacion"
	colPages       = "numero_paginas"

	colCopyID   = "id_ejemplar"
	colCode     = "codigo_ejemplar"
	colStatus   = "estado"
	colLocation = "ubicacion"
)

// SQLite DDL. Dates are kept as yyyy-mm-dd TEXT.
const (
	sqliteCreateAuthors = `CREATE TABLE IF NOT EXISTS autores (
    id_autor INTEGER PRIMARY KEY AUTOINCREMENT,
    nombre TEXT NOT NULL,
    apellidos TEXT NOT NULL,
    nacionalidad TEXT,
    fecha_nacimiento TEXT
);`

	sqliteCreateBooks = `CREATE TABLE IF NOT EXISTS libros (
    id_libro INTEGER PRIMARY KEY AUTOINCREMENT,
    titulo TEXT NOT NULL,
    isbn TEXT NOT NULL UNIQUE,
    fecha_publicacion TEXT,
    numero_paginas INTEGER,
    id_autor INTEGER NOT NULL,
    FOREIGN KEY (id_autor) REFERENCES autores(id_autor)
);`

	sqliteCreateCopies = `CREATE TABLE IF NOT EXISTS ejemplares (
    id_ejemplar INTEGER PRIMARY KEY AUTOINCREMENT,
    codigo_ejemplar TEXT NOT NULL UNIQUE,
    estado TEXT NOT NULL,
    ubicacion TEXT,
    id_libro INTEGER NOT NULL,
    FOREIGN KEY (id_libro) REFERENCES libros(id_libro)
);`
)

// PostgreSQL DDL.
const (
	pgCreateAuthors = `CREATE TABLE IF NOT EXISTS autores (
    id_autor BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    nombre VARCHAR(255) NOT NULL,
    apellidos VARCHAR(255) NOT NULL,
    nacionalidad VARCHAR(255),
    fecha_nacimiento DATE
);`

	pgCreateBooks = `CREATE TABLE IF NOT EXISTS libros (
    id_libro BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    titulo VARCHAR(255) NOT NULL,
    isbn VARCHAR(255) NOT NULL UNIQUE,
    fecha_publicacion DATE,
    numero_paginas INTEGER,
    id_autor BIGINT NOT NULL REFERENCES autores(id_autor)
);`

	pgCreateCopies = `CREATE TABLE IF NOT EXISTS ejemplares (
    id_ejemplar BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    codigo_ejemplar VARCHAR(255) NOT NULL UNIQUE,
    estado VARCHAR(32) NOT NULL,
    ubicacion VARCHAR(255),
    id_libro BIGINT NOT NULL REFERENCES libros(id_libro)
);`
)

// Index DDL, valid for both dialects.
const (
	idxBooksAuthor  = `CREATE INDEX IF NOT EXISTS idx_libros_autor ON libros(id_autor);`
	idxCopiesBook   = `CREATE INDEX IF NOT EXISTS idx_ejemplares_libro ON ejemplares(id_libro);`
	idxCopiesStatus = `CREATE INDEX IF NOT EXISTS idx_ejemplares_estado ON ejemplares(estado);`
)

// schemaDDL returns the CREATE statements for backend in dependency order,
// followed by the indexes.
func schemaDDL(backend string) []string {
	tables := []string{sqliteCreateAuthors, sqliteCreateBooks, sqliteCreateCopies}
	if backend == types.BackendPostgres {
		tables = []string{pgCreateAuthors, pgCreateBooks, pgCreateCopies}
	}
	return append(tables, idxBooksAuthor, idxCopiesBook, idxCopiesStatus)
}
