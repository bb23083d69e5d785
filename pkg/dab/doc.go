/*
Package dab -- short for Data Access Broker -- contains functions that load
the cmdperms input documents from a filesystem and hand back cpapi types.

Both inputs share one envelope: a JSON object whose "data" key holds a list
of positional records.  Records are validated for arity and field kinds as
they are decoded, so everything downstream can work with fixed-field structs.

Documents may contain JSONC comments and trailing commas; these are removed
before decoding.

An fs.FS is always required.  Outside of tests it is typically an os-backed
filesystem rooted at the working directory.
*/
package dab
