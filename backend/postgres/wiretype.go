package postgres

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/Serajian/go-query-builder/qkerr"
)

// builtinOID maps every sqltype.SQLType name this module renders (see
// sqltype.SQLType.TypeName) to its PostgreSQL builtin OID. Anything absent
// here is an application-declared composite/enum/domain type, resolved and
// cached against pg_type instead — see compositeOIDCache.
var builtinOID = map[string]uint32{
	"bool":             pgtype.BoolOID,
	"smallint":         pgtype.Int2OID,
	"integer":          pgtype.Int4OID,
	"bigint":           pgtype.Int8OID,
	"real":             pgtype.Float4OID,
	"double precision": pgtype.Float8OID,
	"numeric":          pgtype.NumericOID,
	"text":             pgtype.TextOID,
	"bytea":            pgtype.ByteaOID,
	"date":             pgtype.DateOID,
	"time":             pgtype.TimeOID,
	"timestamp":        pgtype.TimestampOID,
	"interval":         pgtype.IntervalOID,
	"json":             pgtype.JSONOID,
	"jsonb":            pgtype.JSONBOID,
	"uuid":             pgtype.UUIDOID,
}

// baseTypeName strips any leading "nullable "/"unsigned " markers from a
// type name, since the wire OID only depends on the underlying type
// (sqltype.Nullable[T].TypeName itself returns the inner name unmarked).
func baseTypeName(name string) string {
	for _, prefix := range []string{"nullable ", "unsigned "} {
		if strings.HasPrefix(name, prefix) {
			return baseTypeName(strings.TrimPrefix(name, prefix))
		}
	}
	return name
}

// compositeOIDCache resolves a non-builtin SQL type name to its OID by
// querying pg_type once per connection (via pgx's LoadType, which reads
// pg_type/pg_attribute) and caching the result, instead of a catalog round
// trip on every bind of that type.
type compositeOIDCache struct {
	mu     sync.Mutex
	byName map[string]uint32
}

func newCompositeOIDCache() *compositeOIDCache {
	return &compositeOIDCache{byName: map[string]uint32{}}
}

func (c *compositeOIDCache) resolve(ctx context.Context, pc *pgx.Conn, name string) (uint32, error) {
	c.mu.Lock()
	oid, cached := c.byName[name]
	c.mu.Unlock()
	if cached {
		return oid, nil
	}

	dt, err := pc.LoadType(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("postgres: resolving pg_type entry for %q: %w", name, err)
	}
	pc.TypeMap().RegisterType(dt)

	c.mu.Lock()
	c.byName[name] = dt.OID
	c.mu.Unlock()
	return dt.OID, nil
}

// oidForSQLType resolves sqlType (a sqltype.SQLType.TypeName value, as
// recorded on serialize.BindParam.SQLType) to the PostgreSQL OID it binds
// as: the builtin table first, falling back to the per-connection pg_type
// cache for a type name the application declared itself.
func (c *Connection) oidForSQLType(ctx context.Context, sqlType string) (uint32, error) {
	name := baseTypeName(sqlType)
	if oid, ok := builtinOID[name]; ok {
		return oid, nil
	}
	return c.composite.resolve(ctx, c.conn, name)
}

// checkParamTypes resolves the wire OID for every bind and, where the
// server reported a concrete (non-zero, not-unknown) OID for that
// placeholder during Prepare, rejects a bind whose declared SQL type maps
// to a different OID — catching a query-builder/schema type mismatch as a
// qkerr before the bytes reach the wire, rather than as an opaque
// encode/decode failure from pgx.
func (c *Connection) checkParamTypes(ctx context.Context, paramOIDs []uint32, sqlTypes []string) error {
	for i, sqlType := range sqlTypes {
		if i >= len(paramOIDs) {
			break
		}
		declared := paramOIDs[i]
		if declared == 0 || declared == pgtype.UnknownOID {
			continue
		}
		oid, err := c.oidForSQLType(ctx, sqlType)
		if err != nil {
			return err
		}
		if oid != declared {
			return qkerr.Serialization.New(sqlType, fmt.Sprintf("bind %d's OID %d does not match the prepared statement's parameter OID %d", i+1, oid, declared))
		}
	}
	return nil
}
