/*
Package litepage contains a read-only decoder for SQLite 3 database files.
It decodes the file header, single b-tree pages and the records stored in
table-leaf cells. It does not follow child or overflow pages.

Data Structure Documentation

File

A database file is a series of fixed-size pages. Page n starts at byte
offset (n-1) * page size. The file header occupies the first 100 bytes of
page 1, the page header of page 1 follows it.

    File layout:
    +---------------------------------------------+---------+-------------+
    | page 1 (file header (100) + page header...) |   ...   |   page n    |
    +---------------------------------------------+---------+-------------+

    File header (all integers big-endian):
    +-----------+-----------+---------+---------+----------+-----------+-----------------+
    | magic(16) | psize (2) | wv (1)  | rv (1)  | rsv (1)  | frac (3)  | counters (4x12) |
    +-----------+-----------+---------+---------+----------+-----------+-----------------+
    | reserved (20)         | version-valid-for (4)        | version (4)                 |
    +-----------------------+------------------------------+-----------------------------+

Page

A page starts with a page header, followed by the cell pointer array, unused
space and the cell content area, which grows towards the start of the page.

    Page layout:
    +------------------+----------------------+--------------+---------------------+
    | header (8 or 12) | cell pointers (2xN)  | unused space | cell content area   |
    +------------------+----------------------+--------------+---------------------+

    Page header:
    +----------+-------------------+---------------+--------------------+-------------------+------------------------+
    | type (1) | first freeblk (2) | num cells (2) | content offset (2) | fragmented (1)    | right child (4, inner) |
    +----------+-------------------+---------------+--------------------+-------------------+------------------------+

Cell

A table-leaf cell holds a row: the payload size, the row id and the payload.

    +-----------------------+------------------+-------------------+
    | payload size (varint) | row id (varint)  | payload (varlen)  |
    +-----------------------+------------------+-------------------+

Record

A payload is a record: a header of serial types, followed by one value per
serial type.

    +------------------------+-------------------+-------+-------------------+---------+-------+---------+
    | header length (varint) | serial 1 (varint) |  ...  | serial n (varint) | value 1 |  ...  | value n |
    +------------------------+-------------------+-------+-------------------+---------+-------+---------+

Varint

Integers are stored as 1-9 byte big-endian varints. The first eight bytes
contribute 7 bits each, the high bit marks continuation. A ninth byte
contributes all 8 bits.
*/
package litepage
