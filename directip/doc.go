/*
The package directip implements encoding and decoding of Iridium Short Burst Data
(SBD) messages in the DirectIP wire format, as exchanged between the Iridium
gateway and vendor applications. It covers both mobile-originated (MO) and
mobile-terminated (MT) messages.

A message is framed as a one byte protocol revision number, a 16 bit overall
length, and a sequence of information elements (IEs). Each IE consists of a one
byte identifier, a 16 bit length, and the element's body. All multi-byte integers
are big-endian.

Abbreviations:
IE: Information Element
IEI: Information Element Identifier
MO: Mobile-Originated (device to gateway)
MT: Mobile-Terminated (gateway to device)

This package only transforms bytes that are already available; it does not open
sockets or manage transmissions.
*/
package directip
