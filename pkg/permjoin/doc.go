/*
Package permjoin joins command definitions with permission-node definitions
into the flat `name = "node"` table read by the StaffWarnV plugin.

The join runs in three steps, each a plain function over cpapi records:

  - BuildAliasIndex: command name -> aliases, for commands that declare any.
  - BuildNodeMap: command name -> permission node, for aliased commands only,
    keeping the longest node seen for each command.
  - Emit (or Entries): every command plus its aliases, sorted, one line each.

Commands without aliases never reach the output, even when permission
records exist for them.
*/
package permjoin
